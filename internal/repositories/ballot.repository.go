package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"
	"strings"
	"time"

	"gorm.io/gorm"
)

type BallotRepository interface {
	Create(ctx context.Context, ballot *Ballot) error
	CountAll(ctx context.Context) (int64, error)
	CountByVoter(ctx context.Context, voterID string) (int64, error)
	CountsByCandidate(ctx context.Context) (map[string]int64, error)
	CountDistinctVoters(ctx context.Context) (int64, error)
	EarliestBallotTime(ctx context.Context) (*time.Time, error)
	DeleteAll(ctx context.Context) error
}

type ballotRepository struct {
	db  database.DB
	log logger.Logger
}

func NewBallot(db database.DB) BallotRepository {
	return &ballotRepository{
		db:  db,
		log: logger.New("ballotRepository"),
	}
}

func (r *ballotRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// Create inserts the ballot and relies on the UNIQUE(voter_id, position)
// index for the one-vote-per-position rule. A second cast for the same
// position hits the constraint and comes back as ErrAlreadyVotedInPosition:
// the check and the write are the same statement, so two concurrent casts
// cannot both succeed.
func (r *ballotRepository) Create(ctx context.Context, ballot *Ballot) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(ballot).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyVotedInPosition
		}
		return log.Err("failed to create ballot", err,
			"voterId", ballot.VoterID, "candidateId", ballot.CandidateID)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *ballotRepository) CountAll(ctx context.Context) (int64, error) {
	log := r.log.Function("CountAll")

	var count int64
	if err := r.getDB(ctx).Model(&Ballot{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count ballots", err)
	}

	return count, nil
}

func (r *ballotRepository) CountByVoter(ctx context.Context, voterID string) (int64, error) {
	log := r.log.Function("CountByVoter")

	var count int64
	if err := r.getDB(ctx).Model(&Ballot{}).Where("voter_id = ?", voterID).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count ballots by voter", err, "voterId", voterID)
	}

	return count, nil
}

// CountsByCandidate is the aggregation engine's ground truth: live counts
// straight off the ballot rows, never a cached counter.
func (r *ballotRepository) CountsByCandidate(ctx context.Context) (map[string]int64, error) {
	log := r.log.Function("CountsByCandidate")

	type row struct {
		CandidateID string
		Total       int64
	}
	var rows []row
	err := r.getDB(ctx).Model(&Ballot{}).
		Select("candidate_id, COUNT(*) AS total").
		Group("candidate_id").
		Scan(&rows).Error
	if err != nil {
		return nil, log.Err("failed to count ballots by candidate", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.CandidateID] = r.Total
	}

	return counts, nil
}

func (r *ballotRepository) CountDistinctVoters(ctx context.Context) (int64, error) {
	log := r.log.Function("CountDistinctVoters")

	var count int64
	err := r.getDB(ctx).Model(&Ballot{}).
		Distinct("voter_id").
		Count(&count).Error
	if err != nil {
		return 0, log.Err("failed to count distinct voters", err)
	}

	return count, nil
}

// EarliestBallotTime returns the timestamp of the first-ever ballot, nil when
// none has been cast.
func (r *ballotRepository) EarliestBallotTime(ctx context.Context) (*time.Time, error) {
	log := r.log.Function("EarliestBallotTime")

	var ballot Ballot
	err := r.getDB(ctx).Order("created_at ASC").First(&ballot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get earliest ballot", err)
	}

	t := ballot.CreatedAt
	return &t, nil
}

func (r *ballotRepository) DeleteAll(ctx context.Context) error {
	log := r.log.Function("DeleteAll")

	if err := r.getDB(ctx).Unscoped().Where("1 = 1").Delete(&Ballot{}).Error; err != nil {
		return log.Err("failed to delete all ballots", err)
	}

	return nil
}
