package models

import "time"

// ElectionSettingsID is the primary key of the single settings row. The row
// is lazily created with defaults on first access.
const ElectionSettingsID = 1

type ElectionSettings struct {
	ID          int        `gorm:"primaryKey"                        json:"id"`
	Title       string     `gorm:"type:varchar(200);not null"        json:"title"`
	Description string     `gorm:"type:text"                         json:"description"`
	StartsAt    *time.Time `gorm:"type:datetime"                     json:"startsAt,omitempty"` // nil = no lower bound
	EndsAt      *time.Time `gorm:"type:datetime"                     json:"endsAt,omitempty"`   // nil = no upper bound
	Timezone    string     `gorm:"type:varchar(64);not null;default:UTC" json:"timezone"`
	Active      bool       `gorm:"not null;default:true"             json:"active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"                    json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"                    json:"updatedAt"`
}

func (ElectionSettings) TableName() string {
	return "election_settings"
}

// ElectionState is the derived gate state, never stored.
type ElectionState string

const (
	ElectionDisabled   ElectionState = "disabled"
	ElectionNotStarted ElectionState = "not_started"
	ElectionOpen       ElectionState = "open"
	ElectionEnded      ElectionState = "ended"
)

// ElectionStatus is the public view of the gate.
type ElectionStatus struct {
	State    ElectionState `json:"state"`
	Title    string        `json:"title"`
	StartsAt *time.Time    `json:"startsAt,omitempty"`
	EndsAt   *time.Time    `json:"endsAt,omitempty"`
	Timezone string        `json:"timezone"`
}
