package seed

import (
	"server/config"
	"server/internal/logger"
	. "server/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed loads development data: the configured admin account and a small
// candidate field across two positions.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	if config.AdminUsername != "" && config.AdminPassword != "" {
		var existing AdminUser
		if err := db.First(&existing, "username = ?", config.AdminUsername).Error; err != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(config.AdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return log.Err("failed to hash admin password", err)
			}
			admin := AdminUser{
				Username:     config.AdminUsername,
				PasswordHash: string(hash),
			}
			log.Info("Seeding admin user", "username", admin.Username)
			if err := db.Create(&admin).Error; err != nil {
				log.Er("failed to create admin user", err, "username", admin.Username)
			}
		}
	}

	candidates := []Candidate{
		{
			Name:     "Alice Kamara",
			Nickname: "Ally",
			Position: "Chairman",
		}, {
			Name:     "Mohamed Sesay",
			Position: "Chairman",
		}, {
			Name:     "Fatmata Conteh",
			Nickname: "Fatu",
			Position: "Chairlady",
		}, {
			Name:     "Isatu Bangura",
			Position: "Chairlady",
		},
	}

	for _, candidate := range candidates {
		var existing Candidate
		if err := db.First(&existing, "name = ? AND position = ?", candidate.Name, candidate.Position).Error; err == nil {
			continue
		}
		log.Info("Seeding candidate", "name", candidate.Name, "position", candidate.Position)
		if err := db.Create(&candidate).Error; err != nil {
			log.Er("failed to create candidate", err, "name", candidate.Name)
		}
	}

	return nil
}
