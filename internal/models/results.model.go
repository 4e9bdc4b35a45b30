package models

import "time"

// CandidateResult is one ranked row of a results view. Percentage is of the
// view's own denominator: the global ballot total for overall rankings, the
// section total for per-position rankings.
type CandidateResult struct {
	CandidateID string  `json:"candidateId"`
	Name        string  `json:"name"`
	Nickname    string  `json:"nickname,omitempty"`
	Position    string  `json:"position"`
	PhotoURL    string  `json:"photoUrl,omitempty"`
	Votes       int64   `json:"votes"`
	Percentage  float64 `json:"percentage"`
	IsTied      bool    `json:"isTied,omitempty"`
}

// SectionResult groups the ranked candidates of one position. Winner is set
// only when the top candidate has at least one vote and is not tied with the
// runner-up; on a tie all tied candidates carry IsTied.
type SectionResult struct {
	Position   string            `json:"position"`
	TotalVotes int64             `json:"totalVotes"`
	Rows       []CandidateResult `json:"rows"`
	Winner     *CandidateResult  `json:"winner,omitempty"`
	IsTie      bool              `json:"isTie"`
}

type TurnoutReport struct {
	TotalVoters int64   `json:"totalVoters"`
	VotedCount  int64   `json:"votedCount"`
	Percentage  float64 `json:"percentage"`
}

// ResultsSummary is the admin report: everything on one page, rendered from
// the same snapshot so the on-screen and exported numbers agree.
type ResultsSummary struct {
	ElectionTitle  string            `json:"electionTitle"`
	WinnerName     string            `json:"winner"`
	TotalVotes     int64             `json:"totalVotes"`
	CandidateCount int64             `json:"candidateCount"`
	Turnout        TurnoutReport     `json:"turnout"`
	DurationHours  int64             `json:"durationHours"`
	Overall        []CandidateResult `json:"overall"`
	Sections       []SectionResult   `json:"sections"`
	GeneratedAt    time.Time         `json:"generatedAt"`
}
