package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"gorm.io/gorm"
)

type ElectionRepository interface {
	Get(ctx context.Context) (*ElectionSettings, error)
	Update(ctx context.Context, settings *ElectionSettings) error
}

type electionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewElection(db database.DB) ElectionRepository {
	return &electionRepository{
		db:  db,
		log: logger.New("electionRepository"),
	}
}

func (r *electionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// Get returns the singleton settings row, creating it with defaults on first
// access.
func (r *electionRepository) Get(ctx context.Context) (*ElectionSettings, error) {
	log := r.log.Function("Get")

	var settings ElectionSettings
	err := r.getDB(ctx).First(&settings, "id = ?", ElectionSettingsID).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Err("failed to get election settings", err)
	}

	settings = ElectionSettings{
		ID:       ElectionSettingsID,
		Title:    "Election",
		Timezone: "UTC",
		Active:   true,
	}
	if err := r.getDB(ctx).Create(&settings).Error; err != nil {
		return nil, log.Err("failed to create default election settings", err)
	}

	log.Info("created default election settings")
	return &settings, nil
}

func (r *electionRepository) Update(ctx context.Context, settings *ElectionSettings) error {
	log := r.log.Function("Update")

	settings.ID = ElectionSettingsID
	if err := r.getDB(ctx).Save(settings).Error; err != nil {
		return log.Err("failed to update election settings", err)
	}

	return nil
}
