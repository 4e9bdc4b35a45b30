package electionController

import (
	"context"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/utils"
	"time"
)

// ElectionController owns the settings singleton and the gate derived from
// it. The gate state is never stored; it is recomputed from settings plus the
// wall clock on every call.
type ElectionController struct {
	electionRepo repositories.ElectionRepository
	parser       *utils.TimestampParser
	now          func() time.Time
	log          logger.Logger
}

func New(electionRepo repositories.ElectionRepository) *ElectionController {
	return &ElectionController{
		electionRepo: electionRepo,
		parser:       utils.NewTimestampParser(),
		now:          time.Now,
		log:          logger.New("ElectionController"),
	}
}

func (c *ElectionController) Settings(ctx context.Context) (*ElectionSettings, error) {
	return c.electionRepo.Get(ctx)
}

// Status derives the observable gate state. active=false overrides every time
// check; otherwise the configured window is compared against the current
// instant in the configured zone.
func (c *ElectionController) Status(ctx context.Context) (*ElectionStatus, error) {
	settings, err := c.electionRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	status := &ElectionStatus{
		State:    c.deriveState(settings),
		Title:    settings.Title,
		StartsAt: settings.StartsAt,
		EndsAt:   settings.EndsAt,
		Timezone: settings.Timezone,
	}

	return status, nil
}

// CanVote returns nil when casting a ballot is currently permitted, otherwise
// a GateClosedError carrying the reason and the relevant boundary. Every
// cast and login entry point consults this first.
func (c *ElectionController) CanVote(ctx context.Context) error {
	settings, err := c.electionRepo.Get(ctx)
	if err != nil {
		return err
	}

	switch state := c.deriveState(settings); state {
	case ElectionOpen:
		return nil
	case ElectionDisabled:
		return &GateClosedError{State: ElectionDisabled}
	case ElectionNotStarted:
		return &GateClosedError{State: ElectionNotStarted, At: settings.StartsAt}
	default:
		return &GateClosedError{State: ElectionEnded, At: settings.EndsAt}
	}
}

func (c *ElectionController) deriveState(settings *ElectionSettings) ElectionState {
	if !settings.Active {
		return ElectionDisabled
	}

	now := c.now()
	if settings.StartsAt != nil && now.Before(*settings.StartsAt) {
		return ElectionNotStarted
	}
	if settings.EndsAt != nil && now.After(*settings.EndsAt) {
		return ElectionEnded
	}

	return ElectionOpen
}

// UpdateSettings applies a partial update. A bad timezone or malformed
// timestamp rejects the whole request with a typed error before anything is
// written; an empty timestamp string clears that bound.
func (c *ElectionController) UpdateSettings(ctx context.Context, req *UpdateElectionSettingsRequest) (*ElectionSettings, error) {
	log := c.log.Function("UpdateSettings")

	settings, err := c.electionRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		settings.Title = *req.Title
	}
	if req.Description != nil {
		settings.Description = *req.Description
	}
	if req.Active != nil {
		settings.Active = *req.Active
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
		settings.Timezone = *req.Timezone
	}

	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		// Stored zone predates validation; fall back rather than lock the
		// settings row.
		loc = time.UTC
	}

	if req.StartsAt != nil {
		startsAt, err := c.parseBound(*req.StartsAt, loc)
		if err != nil {
			return nil, err
		}
		settings.StartsAt = startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := c.parseBound(*req.EndsAt, loc)
		if err != nil {
			return nil, err
		}
		settings.EndsAt = endsAt
	}

	if err := c.electionRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	log.Info("election settings updated",
		"active", settings.Active, "timezone", settings.Timezone)
	return settings, nil
}

func (c *ElectionController) parseBound(input string, loc *time.Location) (*time.Time, error) {
	if input == "" {
		return nil, nil
	}

	parsed := c.parser.Parse(input, loc)
	if !parsed.IsValid {
		return nil, ErrInvalidTimestamp
	}

	t := parsed.Time
	return &t, nil
}
