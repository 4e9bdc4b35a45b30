package initialize

import (
	"errors"
	"server/config"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

// InitializeTables seeds the essential production rows. The schema itself is
// applied by the embedded migrations when the database opens; this only
// guarantees the election settings singleton exists.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	var settings ElectionSettings
	err := db.First(&settings, "id = ?", ElectionSettingsID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return log.Err("failed to check election settings", err)
		}
		settings = ElectionSettings{
			ID:       ElectionSettingsID,
			Title:    "Election",
			Timezone: "UTC",
			Active:   true,
		}
		if err := db.Create(&settings).Error; err != nil {
			return log.Err("failed to create election settings", err)
		}
		log.Info("Created default election settings")
	}

	log.Info("Table initialization complete")
	return nil
}
