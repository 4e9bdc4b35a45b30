package voterController

import (
	"context"
	"server/config"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
	"server/internal/utils"
	"strings"
)

// Gate is the slice of the election controller the voter flow needs. Kept as
// a local interface to avoid an import cycle.
type Gate interface {
	CanVote(ctx context.Context) error
}

type VoterController struct {
	voterRepo      repositories.VoterRepository
	sessionService *services.SessionService
	normalizer     *utils.PhoneNormalizer
	gate           Gate
	log            logger.Logger
}

func New(
	voterRepo repositories.VoterRepository,
	sessionService *services.SessionService,
	gate Gate,
	config config.Config,
) *VoterController {
	return &VoterController{
		voterRepo:      voterRepo,
		sessionService: sessionService,
		normalizer:     utils.NewPhoneNormalizer(config.PhoneDefaultCountryCode),
		gate:           gate,
		log:            logger.New("VoterController"),
	}
}

// NormalizePhone exposes the canonical form for callers that only need the
// key, e.g. lookups from the presentation layer.
func (c *VoterController) NormalizePhone(raw string) string {
	return c.normalizer.Normalize(raw)
}

// Register adds one eligible voter. The phone number is normalized first and
// must validate against the international-format pattern; duplicates are
// rejected.
func (c *VoterController) Register(ctx context.Context, phone string) (*Voter, error) {
	log := c.log.Function("Register")

	normalized := c.normalizer.Normalize(phone)
	if !c.normalizer.Validate(normalized) {
		return nil, ErrInvalidPhoneFormat
	}

	exists, err := c.voterRepo.ExistsByPhone(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrVoterExists
	}

	voter := &Voter{PhoneNumber: normalized}
	if err := c.voterRepo.Create(ctx, voter); err != nil {
		return nil, err
	}

	log.Info("voter registered", "phone", normalized)
	return voter, nil
}

// BulkRegister processes a newline- or comma-separated list of phone numbers.
// Each entry succeeds or fails on its own; nothing is rolled back on partial
// failure, the caller gets the full tally instead.
func (c *VoterController) BulkRegister(ctx context.Context, raw string) *BulkRegisterResult {
	log := c.log.Function("BulkRegister")

	result := &BulkRegisterResult{Errors: []BulkRegisterFailure{}}

	for _, phone := range splitPhoneList(raw) {
		_, err := c.Register(ctx, phone)
		switch err {
		case nil:
			result.SuccessCount++
		case ErrVoterExists:
			result.ErrorCount++
			result.Errors = append(result.Errors, BulkRegisterFailure{Input: phone, Reason: "Already registered"})
		case ErrInvalidPhoneFormat:
			result.ErrorCount++
			result.Errors = append(result.Errors, BulkRegisterFailure{Input: phone, Reason: "Invalid format"})
		default:
			result.ErrorCount++
			result.Errors = append(result.Errors, BulkRegisterFailure{Input: phone, Reason: err.Error()})
		}
	}

	log.Info("bulk registration finished",
		"successCount", result.SuccessCount, "errorCount", result.ErrorCount)
	return result
}

func splitPhoneList(raw string) []string {
	var phones []string
	for _, line := range strings.Split(raw, "\n") {
		for _, phone := range strings.Split(line, ",") {
			phone = strings.TrimSpace(phone)
			if phone != "" {
				phones = append(phones, phone)
			}
		}
	}
	return phones
}

// Login resolves a voter by phone number and mints a session token. The gate
// is consulted first so a closed election refuses the login with the specific
// reason.
func (c *VoterController) Login(ctx context.Context, phone string) (*Voter, string, error) {
	log := c.log.Function("Login")

	if err := c.gate.CanVote(ctx); err != nil {
		return nil, "", err
	}

	normalized := c.normalizer.Normalize(phone)
	voter, err := c.voterRepo.GetByPhone(ctx, normalized)
	if err != nil {
		return nil, "", err
	}

	token, err := c.sessionService.CreateVoterSession(ctx, voter.ID)
	if err != nil {
		return nil, "", err
	}

	log.Info("voter logged in", "voterId", voter.ID)
	return voter, token, nil
}

func (c *VoterController) Delete(ctx context.Context, id string) error {
	return c.voterRepo.Delete(ctx, id)
}

func (c *VoterController) GetByID(ctx context.Context, id string) (*Voter, error) {
	return c.voterRepo.GetByID(ctx, id)
}

// List returns all voters plus the registered/voted tallies for the admin
// voters page.
func (c *VoterController) List(ctx context.Context) ([]*Voter, int64, int64, error) {
	voters, err := c.voterRepo.List(ctx)
	if err != nil {
		return nil, 0, 0, err
	}

	total, err := c.voterRepo.Count(ctx)
	if err != nil {
		return nil, 0, 0, err
	}

	voted, err := c.voterRepo.CountVoted(ctx)
	if err != nil {
		return nil, 0, 0, err
	}

	return voters, total, voted, nil
}
