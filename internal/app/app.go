package app

import (
	"context"
	"server/config"
	"server/internal/database"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"

	adminController "server/internal/controllers/admin"
	candidateController "server/internal/controllers/candidates"
	electionController "server/internal/controllers/election"
	resultsController "server/internal/controllers/results"
	voterController "server/internal/controllers/voters"
	voteController "server/internal/controllers/votes"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	// Services
	TransactionService *services.TransactionService
	SessionService     *services.SessionService

	// Repositories
	VoterRepo     repositories.VoterRepository
	CandidateRepo repositories.CandidateRepository
	BallotRepo    repositories.BallotRepository
	ElectionRepo  repositories.ElectionRepository
	AdminRepo     repositories.AdminUserRepository

	// Controllers
	ElectionController  *electionController.ElectionController
	VoterController     *voterController.VoterController
	CandidateController *candidateController.CandidateController
	VoteController      *voteController.VoteController
	ResultsController   *resultsController.ResultsController
	AdminController     *adminController.AdminController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)
	sessionService := services.NewSessionService(db, config)

	// Initialize repositories
	voterRepo := repositories.NewVoter(db)
	candidateRepo := repositories.NewCandidate(db)
	ballotRepo := repositories.NewBallot(db)
	electionRepo := repositories.NewElection(db)
	adminRepo := repositories.NewAdminUser(db)

	// Initialize controllers
	election := electionController.New(electionRepo)
	voters := voterController.New(voterRepo, sessionService, election, config)
	candidates := candidateController.New(candidateRepo)
	votes := voteController.New(ballotRepo, candidateRepo, voterRepo, transactionService, election)
	results := resultsController.New(ballotRepo, candidateRepo, voterRepo, electionRepo)
	admin := adminController.New(
		adminRepo, voterRepo, candidateRepo, ballotRepo,
		sessionService, transactionService, config,
	)

	middleware := middleware.New(sessionService, voterRepo, config)

	app := &App{
		Database:            db,
		Config:              config,
		Middleware:          middleware,
		TransactionService:  transactionService,
		SessionService:      sessionService,
		VoterRepo:           voterRepo,
		CandidateRepo:       candidateRepo,
		BallotRepo:          ballotRepo,
		ElectionRepo:        electionRepo,
		AdminRepo:           adminRepo,
		ElectionController:  election,
		VoterController:     voters,
		CandidateController: candidates,
		VoteController:      votes,
		ResultsController:   results,
		AdminController:     admin,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	if err := admin.EnsureDefaultAdmin(context.Background()); err != nil {
		return &App{}, log.Err("failed to ensure default admin", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.TransactionService,
		a.SessionService,
		a.VoterRepo,
		a.CandidateRepo,
		a.BallotRepo,
		a.ElectionRepo,
		a.AdminRepo,
		a.ElectionController,
		a.VoterController,
		a.CandidateController,
		a.VoteController,
		a.ResultsController,
		a.AdminController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() error {
	return a.Database.Close()
}
