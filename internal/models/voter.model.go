package models

import "time"

// Voter is an eligible voter keyed by phone number in canonical international
// form (+<countrycode><digits>). The phone number is never changed after
// creation; only the two flags and VotedAt are updated.
type Voter struct {
	BaseUUIDModel
	PhoneNumber string     `gorm:"type:varchar(20);not null;uniqueIndex" json:"phoneNumber"`
	IsVerified  bool       `gorm:"not null;default:false"                json:"isVerified"`
	HasVoted    bool       `gorm:"not null;default:false"                json:"hasVoted"`
	VotedAt     *time.Time `gorm:"type:datetime"                         json:"votedAt,omitempty"` // first ballot only

	Ballots []Ballot `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Voter) TableName() string {
	return "voters"
}
