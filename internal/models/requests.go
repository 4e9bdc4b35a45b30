package models

type RegisterVoterRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// BulkRegisterVotersRequest carries free-form voter input: newline- and
// comma-separated phone numbers, blanks ignored.
type BulkRegisterVotersRequest struct {
	PhoneNumbers string `json:"phoneNumbers"`
}

type BulkRegisterFailure struct {
	Input  string `json:"input"`
	Reason string `json:"reason"`
}

type BulkRegisterResult struct {
	SuccessCount int                   `json:"successCount"`
	ErrorCount   int                   `json:"errorCount"`
	Errors       []BulkRegisterFailure `json:"errors"`
}

type VoterLoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type CandidateRequest struct {
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	Position    string `json:"position"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidateId"`
}

// UpdateElectionSettingsRequest is a partial update: nil pointers leave the
// stored value untouched; empty-string timestamps clear the bound.
type UpdateElectionSettingsRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartsAt    *string `json:"startsAt,omitempty"`
	EndsAt      *string `json:"endsAt,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
