package voteController

import (
	"context"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
)

// Gate is the slice of the election controller the cast path needs.
type Gate interface {
	CanVote(ctx context.Context) error
}

type VoteController struct {
	ballotRepo         repositories.BallotRepository
	candidateRepo      repositories.CandidateRepository
	voterRepo          repositories.VoterRepository
	transactionService *services.TransactionService
	gate               Gate
	log                logger.Logger
}

func New(
	ballotRepo repositories.BallotRepository,
	candidateRepo repositories.CandidateRepository,
	voterRepo repositories.VoterRepository,
	transactionService *services.TransactionService,
	gate Gate,
) *VoteController {
	return &VoteController{
		ballotRepo:         ballotRepo,
		candidateRepo:      candidateRepo,
		voterRepo:          voterRepo,
		transactionService: transactionService,
		gate:               gate,
		log:                logger.New("VoteController"),
	}
}

// Cast records one ballot for (voter, candidate). The ballot write and the
// participation-flag update run in a single transaction; the one-vote-per-
// position rule is enforced by the ballot table's unique index, so a
// concurrent duplicate cast fails the insert rather than slipping past a
// pre-check.
func (c *VoteController) Cast(ctx context.Context, voterID, candidateID string) (*Ballot, error) {
	log := c.log.Function("Cast")

	if err := c.gate.CanVote(ctx); err != nil {
		return nil, err
	}

	var ballot *Ballot
	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		voter, err := c.voterRepo.GetByID(txCtx, voterID)
		if err != nil {
			return err
		}

		candidate, err := c.candidateRepo.GetByID(txCtx, candidateID)
		if err != nil {
			return err
		}

		ballot = &Ballot{
			VoterID:     voter.ID,
			CandidateID: candidate.ID,
			Position:    candidate.Position,
		}
		if err := c.ballotRepo.Create(txCtx, ballot); err != nil {
			return err
		}

		return c.voterRepo.MarkVoted(txCtx, voter.ID)
	})
	if err != nil {
		if err == ErrAlreadyVotedInPosition || err == ErrVoterNotFound || err == ErrCandidateNotFound {
			return nil, err
		}
		return nil, log.Err("failed to cast vote", err, "voterId", voterID, "candidateId", candidateID)
	}

	log.Info("ballot recorded",
		"voterId", voterID, "candidateId", candidateID, "position", ballot.Position)
	return ballot, nil
}
