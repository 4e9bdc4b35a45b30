package models

// AdminUser backs the administrator login. The password is stored as a bcrypt
// hash; everything else in the system only ever sees the session token.
type AdminUser struct {
	BaseUUIDModel
	Username     string `gorm:"type:varchar(64);not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"type:varchar(128);not null"            json:"-"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
