package models

// Ballot records one (voter, candidate) vote. Position is copied from the
// candidate at cast time so the uniqueness rule "one ballot per voter per
// position" lives in the schema itself: UNIQUE(voter_id, position). Ballots
// are append-only; they are removed only by voter-delete cascade or a full
// admin reset.
type Ballot struct {
	BaseUUIDModel
	VoterID     string `gorm:"type:varchar(64);not null;uniqueIndex:idx_ballots_voter_position" json:"voterId"`
	CandidateID string `gorm:"type:varchar(64);not null;index"                                  json:"candidateId"`
	Position    string `gorm:"type:varchar(80);not null;uniqueIndex:idx_ballots_voter_position" json:"position"`
}

func (Ballot) TableName() string {
	return "ballots"
}
