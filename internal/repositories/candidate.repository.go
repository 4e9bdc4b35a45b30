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

type CandidateRepository interface {
	Create(ctx context.Context, candidate *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	Update(ctx context.Context, candidate *Candidate) error
	List(ctx context.Context) ([]*Candidate, error)
	ListByPosition(ctx context.Context) ([]*Candidate, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

type candidateRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCandidate(db database.DB) CandidateRepository {
	return &candidateRepository{
		db:  db,
		log: logger.New("candidateRepository"),
	}
}

func (r *candidateRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *candidateRepository) Create(ctx context.Context, candidate *Candidate) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(candidate).Error; err != nil {
		return log.Err("failed to create candidate", err, "name", candidate.Name)
	}

	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*Candidate, error) {
	log := r.log.Function("GetByID")

	var candidate Candidate
	if err := r.getDB(ctx).First(&candidate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, log.Err("failed to get candidate by id", err, "id", id)
	}

	return &candidate, nil
}

func (r *candidateRepository) Update(ctx context.Context, candidate *Candidate) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(candidate).Error; err != nil {
		return log.Err("failed to update candidate", err, "id", candidate.ID)
	}

	return nil
}

func (r *candidateRepository) List(ctx context.Context) ([]*Candidate, error) {
	log := r.log.Function("List")

	var candidates []*Candidate
	if err := r.getDB(ctx).Order("name ASC").Find(&candidates).Error; err != nil {
		return nil, log.Err("failed to list candidates", err)
	}

	return candidates, nil
}

// ListByPosition orders by position then name, the order the voting view
// groups by.
func (r *candidateRepository) ListByPosition(ctx context.Context) ([]*Candidate, error) {
	log := r.log.Function("ListByPosition")

	var candidates []*Candidate
	if err := r.getDB(ctx).Order("position ASC, name ASC").Find(&candidates).Error; err != nil {
		return nil, log.Err("failed to list candidates by position", err)
	}

	return candidates, nil
}

func (r *candidateRepository) Count(ctx context.Context) (int64, error) {
	log := r.log.Function("Count")

	var count int64
	if err := r.getDB(ctx).Model(&Candidate{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count candidates", err)
	}

	return count, nil
}

func (r *candidateRepository) DeleteAll(ctx context.Context) error {
	log := r.log.Function("DeleteAll")

	if err := r.getDB(ctx).Unscoped().Where("1 = 1").Delete(&Candidate{}).Error; err != nil {
		return log.Err("failed to delete all candidates", err)
	}

	return nil
}
