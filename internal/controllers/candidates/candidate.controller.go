package candidateController

import (
	"context"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"strings"
)

type CandidateController struct {
	candidateRepo repositories.CandidateRepository
	log           logger.Logger
}

func New(candidateRepo repositories.CandidateRepository) *CandidateController {
	return &CandidateController{
		candidateRepo: candidateRepo,
		log:           logger.New("CandidateController"),
	}
}

// Add creates a candidate. Name is the only required field; a blank position
// falls back to the default section label.
func (c *CandidateController) Add(ctx context.Context, req *CandidateRequest) (*Candidate, error) {
	log := c.log.Function("Add")

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCandidateNameRequired
	}

	position := strings.TrimSpace(req.Position)
	if position == "" {
		position = DefaultPosition
	}

	candidate := &Candidate{
		Name:        name,
		Nickname:    strings.TrimSpace(req.Nickname),
		Position:    position,
		Description: strings.TrimSpace(req.Description),
		PhotoURL:    strings.TrimSpace(req.PhotoURL),
	}

	if err := c.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, err
	}

	log.Info("candidate added", "name", name, "position", position)
	return candidate, nil
}

// Edit applies a partial update: every blank field keeps the previous value,
// including position, which falls back to its prior value rather than the
// default label.
func (c *CandidateController) Edit(ctx context.Context, id string, req *CandidateRequest) (*Candidate, error) {
	log := c.log.Function("Edit")

	candidate, err := c.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		candidate.Name = name
	}
	if nickname := strings.TrimSpace(req.Nickname); nickname != "" {
		candidate.Nickname = nickname
	}
	if position := strings.TrimSpace(req.Position); position != "" {
		candidate.Position = position
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		candidate.Description = description
	}
	if photoURL := strings.TrimSpace(req.PhotoURL); photoURL != "" {
		candidate.PhotoURL = photoURL
	}

	if err := c.candidateRepo.Update(ctx, candidate); err != nil {
		return nil, err
	}

	log.Info("candidate updated", "id", id)
	return candidate, nil
}

func (c *CandidateController) List(ctx context.Context) ([]*Candidate, error) {
	return c.candidateRepo.List(ctx)
}

// ListGroupedByPosition returns candidates grouped for the voting view, with
// positions in alphabetical order so the grouping is stable.
func (c *CandidateController) ListGroupedByPosition(ctx context.Context) ([]string, map[string][]*Candidate, error) {
	candidates, err := c.candidateRepo.ListByPosition(ctx)
	if err != nil {
		return nil, nil, err
	}

	var positions []string
	grouped := make(map[string][]*Candidate)
	for _, candidate := range candidates {
		if _, ok := grouped[candidate.Position]; !ok {
			positions = append(positions, candidate.Position)
		}
		grouped[candidate.Position] = append(grouped[candidate.Position], candidate)
	}

	return positions, grouped, nil
}
