package adminController

import (
	"context"
	"server/config"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// AdminController is the concrete "is this caller an administrator"
// collaborator: bcrypt-hashed credentials in sqlite, opaque session tokens in
// valkey. The voting core only ever sees the middleware guard built on top.
type AdminController struct {
	adminRepo          repositories.AdminUserRepository
	voterRepo          repositories.VoterRepository
	candidateRepo      repositories.CandidateRepository
	ballotRepo         repositories.BallotRepository
	sessionService     *services.SessionService
	transactionService *services.TransactionService
	config             config.Config
	log                logger.Logger
}

func New(
	adminRepo repositories.AdminUserRepository,
	voterRepo repositories.VoterRepository,
	candidateRepo repositories.CandidateRepository,
	ballotRepo repositories.BallotRepository,
	sessionService *services.SessionService,
	transactionService *services.TransactionService,
	config config.Config,
) *AdminController {
	return &AdminController{
		adminRepo:          adminRepo,
		voterRepo:          voterRepo,
		candidateRepo:      candidateRepo,
		ballotRepo:         ballotRepo,
		sessionService:     sessionService,
		transactionService: transactionService,
		config:             config,
		log:                logger.New("AdminController"),
	}
}

// Login checks the credentials and mints an admin session token. A missing
// user and a wrong password both come back as ErrInvalidCredentials.
func (c *AdminController) Login(ctx context.Context, username, password string) (string, error) {
	log := c.log.Function("Login")

	admin, err := c.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if err == ErrAdminNotFound {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := c.sessionService.CreateAdminSession(ctx, admin.ID)
	if err != nil {
		return "", err
	}

	log.Info("admin logged in", "username", username)
	return token, nil
}

func (c *AdminController) Logout(ctx context.Context, token string) error {
	return c.sessionService.DeleteAdminSession(ctx, token)
}

// ChangePassword verifies the old password and applies the new one.
func (c *AdminController) ChangePassword(ctx context.Context, adminID string, req *ChangePasswordRequest) error {
	log := c.log.Function("ChangePassword")

	admin, err := c.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if req.NewPassword != req.ConfirmPassword {
		return log.Error("new passwords do not match")
	}
	if len(req.NewPassword) < minPasswordLength {
		return log.Error("new password is too short", "minLength", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash password", err)
	}

	if err := c.adminRepo.UpdatePassword(ctx, admin.ID, string(hash)); err != nil {
		return err
	}

	log.Info("admin password changed", "adminId", admin.ID)
	return nil
}

// ResetData wipes ballots, voters and candidates in one transaction. Election
// settings and admin accounts survive.
func (c *AdminController) ResetData(ctx context.Context) error {
	log := c.log.Function("ResetData")

	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if err := c.ballotRepo.DeleteAll(txCtx); err != nil {
			return err
		}
		if err := c.voterRepo.DeleteAll(txCtx); err != nil {
			return err
		}
		return c.candidateRepo.DeleteAll(txCtx)
	})
	if err != nil {
		return log.Err("failed to reset election data", err)
	}

	log.Info("election data reset")
	return nil
}

// EnsureDefaultAdmin creates the configured admin account when it does not
// exist yet. Run at startup and by the seed command; a blank configured
// password disables the account creation.
func (c *AdminController) EnsureDefaultAdmin(ctx context.Context) error {
	log := c.log.Function("EnsureDefaultAdmin")

	if c.config.AdminUsername == "" || c.config.AdminPassword == "" {
		log.Info("no default admin configured, skipping")
		return nil
	}

	_, err := c.adminRepo.GetByUsername(ctx, c.config.AdminUsername)
	if err == nil {
		return nil
	}
	if err != ErrAdminNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash default admin password", err)
	}

	admin := &AdminUser{
		Username:     c.config.AdminUsername,
		PasswordHash: string(hash),
	}
	if err := c.adminRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Info("default admin created", "username", admin.Username)
	return nil
}
