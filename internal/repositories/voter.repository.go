package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"
	"time"

	"gorm.io/gorm"
)

type VoterRepository interface {
	Create(ctx context.Context, voter *Voter) error
	GetByID(ctx context.Context, id string) (*Voter, error)
	GetByPhone(ctx context.Context, phone string) (*Voter, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	MarkVoted(ctx context.Context, voterID string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Voter, error)
	Count(ctx context.Context) (int64, error)
	CountVoted(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

type voterRepository struct {
	db  database.DB
	log logger.Logger
}

func NewVoter(db database.DB) VoterRepository {
	return &voterRepository{
		db:  db,
		log: logger.New("voterRepository"),
	}
}

func (r *voterRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *voterRepository) Create(ctx context.Context, voter *Voter) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(voter).Error; err != nil {
		return log.Err("failed to create voter", err, "phone", voter.PhoneNumber)
	}

	return nil
}

func (r *voterRepository) GetByID(ctx context.Context, id string) (*Voter, error) {
	log := r.log.Function("GetByID")

	var voter Voter
	if err := r.getDB(ctx).First(&voter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoterNotFound
		}
		return nil, log.Err("failed to get voter by id", err, "id", id)
	}

	return &voter, nil
}

func (r *voterRepository) GetByPhone(ctx context.Context, phone string) (*Voter, error) {
	log := r.log.Function("GetByPhone")

	var voter Voter
	if err := r.getDB(ctx).First(&voter, "phone_number = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoterNotFound
		}
		return nil, log.Err("failed to get voter by phone", err, "phone", phone)
	}

	return &voter, nil
}

func (r *voterRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	log := r.log.Function("ExistsByPhone")

	var count int64
	if err := r.getDB(ctx).Model(&Voter{}).Where("phone_number = ?", phone).Count(&count).Error; err != nil {
		return false, log.Err("failed to check voter existence", err, "phone", phone)
	}

	return count > 0, nil
}

// MarkVoted flips the participation flag and stamps the first-vote time.
// Idempotent: the WHERE clause only matches the first transition, so a voter
// casting in a second position keeps the original timestamp.
func (r *voterRepository) MarkVoted(ctx context.Context, voterID string) error {
	log := r.log.Function("MarkVoted")

	now := time.Now()
	result := r.getDB(ctx).Model(&Voter{}).
		Where("id = ? AND has_voted = ?", voterID, false).
		Updates(map[string]any{"has_voted": true, "voted_at": now})
	if result.Error != nil {
		return log.Err("failed to mark voter as voted", result.Error, "voterId", voterID)
	}

	return nil
}

func (r *voterRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	db := r.getDB(ctx)

	if err := db.Unscoped().Where("voter_id = ?", id).Delete(&Ballot{}).Error; err != nil {
		return log.Err("failed to delete voter ballots", err, "voterId", id)
	}

	result := db.Unscoped().Delete(&Voter{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete voter", result.Error, "voterId", id)
	}
	if result.RowsAffected == 0 {
		return ErrVoterNotFound
	}

	log.Info("deleted voter", "voterId", id)
	return nil
}

func (r *voterRepository) List(ctx context.Context) ([]*Voter, error) {
	log := r.log.Function("List")

	var voters []*Voter
	if err := r.getDB(ctx).Order("created_at DESC").Find(&voters).Error; err != nil {
		return nil, log.Err("failed to list voters", err)
	}

	return voters, nil
}

func (r *voterRepository) Count(ctx context.Context) (int64, error) {
	log := r.log.Function("Count")

	var count int64
	if err := r.getDB(ctx).Model(&Voter{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count voters", err)
	}

	return count, nil
}

func (r *voterRepository) CountVoted(ctx context.Context) (int64, error) {
	log := r.log.Function("CountVoted")

	var count int64
	if err := r.getDB(ctx).Model(&Voter{}).Where("has_voted = ?", true).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count voted voters", err)
	}

	return count, nil
}

func (r *voterRepository) DeleteAll(ctx context.Context) error {
	log := r.log.Function("DeleteAll")

	if err := r.getDB(ctx).Unscoped().Where("1 = 1").Delete(&Voter{}).Error; err != nil {
		return log.Err("failed to delete all voters", err)
	}

	return nil
}
