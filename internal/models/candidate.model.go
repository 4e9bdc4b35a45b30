package models

// DefaultPosition is the section label applied when a candidate is created
// without one.
const DefaultPosition = "Candidate"

// Candidate runs for a single position. Vote counts are always computed live
// from ballots; there is no stored counter here.
type Candidate struct {
	BaseUUIDModel
	Name        string `gorm:"type:varchar(100);not null"                   json:"name"`
	Nickname    string `gorm:"type:varchar(60)"                             json:"nickname"`
	Position    string `gorm:"type:varchar(80);not null;default:Candidate"  json:"position"`
	Description string `gorm:"type:text"                                    json:"description"`
	PhotoURL    string `gorm:"type:varchar(255)"                            json:"photoUrl"`

	Ballots []Ballot `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}
