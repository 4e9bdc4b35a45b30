package resultsController

import (
	"context"
	"fmt"
	"path/filepath"
	"server/config"
	"server/internal/database"
	. "server/internal/models"
	"server/internal/repositories"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db            database.DB
	voterRepo     repositories.VoterRepository
	candidateRepo repositories.CandidateRepository
	ballotRepo    repositories.BallotRepository
	electionRepo  repositories.ElectionRepository
	controller    *ResultsController
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{DatabaseDbPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.NewSQLOnly(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	env := &testEnv{
		db:            db,
		voterRepo:     repositories.NewVoter(db),
		candidateRepo: repositories.NewCandidate(db),
		ballotRepo:    repositories.NewBallot(db),
		electionRepo:  repositories.NewElection(db),
	}
	env.controller = New(env.ballotRepo, env.candidateRepo, env.voterRepo, env.electionRepo)
	return env
}

func (e *testEnv) addCandidate(t *testing.T, name, position string) *Candidate {
	t.Helper()
	candidate := &Candidate{Name: name, Position: position}
	require.NoError(t, e.candidateRepo.Create(context.Background(), candidate))
	return candidate
}

// castBallots registers n fresh voters and casts one ballot each for the
// candidate. Phone numbers are synthesized off the running voter count so
// callers can layer seed calls freely.
func (e *testEnv) castBallots(t *testing.T, candidate *Candidate, n int) {
	t.Helper()
	ctx := context.Background()

	existing, err := e.voterRepo.Count(ctx)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		voter := &Voter{PhoneNumber: fmt.Sprintf("+2327600%04d", existing+int64(i)+1)}
		require.NoError(t, e.voterRepo.Create(ctx, voter))
		require.NoError(t, e.ballotRepo.Create(ctx, &Ballot{
			VoterID:     voter.ID,
			CandidateID: candidate.ID,
			Position:    candidate.Position,
		}))
	}
}

func TestResultsController_ByPosition_TieBlocksWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.addCandidate(t, "Alice", "Chairman")
	bob := env.addCandidate(t, "Bob", "Chairman")
	clara := env.addCandidate(t, "Clara", "Chairman")

	env.castBallots(t, alice, 10)
	env.castBallots(t, bob, 10)
	env.castBallots(t, clara, 5)

	sections, err := env.controller.ByPosition(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	section := sections[0]
	assert.Equal(t, "Chairman", section.Position)
	assert.Equal(t, int64(25), section.TotalVotes)
	assert.True(t, section.IsTie)
	assert.Nil(t, section.Winner, "a tied section declares no winner")

	require.Len(t, section.Rows, 3)
	assert.Equal(t, "Alice", section.Rows[0].Name, "ties break alphabetically")
	assert.Equal(t, "Bob", section.Rows[1].Name)
	assert.Equal(t, "Clara", section.Rows[2].Name)

	assert.True(t, section.Rows[0].IsTied)
	assert.True(t, section.Rows[1].IsTied)
	assert.False(t, section.Rows[2].IsTied)

	assert.Equal(t, 40.0, section.Rows[0].Percentage)
	assert.Equal(t, 40.0, section.Rows[1].Percentage)
	assert.Equal(t, 20.0, section.Rows[2].Percentage)
}

func TestResultsController_ByPosition_WinnerPerSection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.addCandidate(t, "Alice", "Chairman")
	env.addCandidate(t, "Bob", "Chairman")
	clara := env.addCandidate(t, "Clara", "Chairlady")

	env.castBallots(t, alice, 3)
	env.castBallots(t, clara, 2)

	sections, err := env.controller.ByPosition(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	// Sections arrive alphabetically.
	assert.Equal(t, "Chairlady", sections[0].Position)
	assert.Equal(t, "Chairman", sections[1].Position)

	require.NotNil(t, sections[0].Winner)
	assert.Equal(t, "Clara", sections[0].Winner.Name)
	assert.Equal(t, 100.0, sections[0].Winner.Percentage)

	require.NotNil(t, sections[1].Winner)
	assert.Equal(t, "Alice", sections[1].Winner.Name)
	assert.Equal(t, 100.0, sections[1].Winner.Percentage, "section percentages ignore other sections")
}

func TestResultsController_ByPosition_NoBallotsNoWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addCandidate(t, "Alice", "Chairman")
	env.addCandidate(t, "Bob", "Chairman")

	sections, err := env.controller.ByPosition(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	assert.False(t, sections[0].IsTie, "zero-zero is not a tie")
	assert.Nil(t, sections[0].Winner, "no winner without a single vote")
	assert.Zero(t, sections[0].Rows[0].Percentage)
}

func TestResultsController_Overall_Precision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.addCandidate(t, "Alice", "Chairman")
	env.addCandidate(t, "Bob", "Chairman")

	env.castBallots(t, alice, 1)
	env.castBallots(t, env.addCandidate(t, "Clara", "Chairman"), 2)

	rows, total, isTie, err := env.controller.Overall(ctx, PublicPrecision)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.False(t, isTie)

	require.Len(t, rows, 3)
	assert.Equal(t, "Clara", rows[0].Name)
	assert.Equal(t, 66.7, rows[0].Percentage)
	assert.Equal(t, 33.3, rows[1].Percentage)
	assert.Zero(t, rows[2].Percentage)
}

func TestResultsController_Overall_Deterministic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.castBallots(t, env.addCandidate(t, "Bob", "Chairman"), 2)
	env.castBallots(t, env.addCandidate(t, "Alice", "Chairman"), 2)
	env.castBallots(t, env.addCandidate(t, "Clara", "Chairlady"), 1)

	first, _, _, err := env.controller.Overall(ctx, ReportPrecision)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, _, _, err := env.controller.Overall(ctx, ReportPrecision)
		require.NoError(t, err)
		assert.Equal(t, first, again, "same snapshot must render identically")
	}
}

func TestResultsController_Turnout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.addCandidate(t, "Alice", "Chairman")
	env.castBallots(t, alice, 2)

	// A registered voter who never casts.
	require.NoError(t, env.voterRepo.Create(ctx, &Voter{PhoneNumber: "+23276999999"}))

	report, err := env.controller.Turnout(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), report.TotalVoters)
	assert.Equal(t, int64(2), report.VotedCount)
	assert.Equal(t, 66.67, report.Percentage)
}

func TestResultsController_Turnout_NoVoters(t *testing.T) {
	env := newTestEnv(t)

	report, err := env.controller.Turnout(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.TotalVoters)
	assert.Zero(t, report.VotedCount)
	assert.Zero(t, report.Percentage)
}

func TestResultsController_Turnout_CountsVotersNotBallots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	chairman := env.addCandidate(t, "Alice", "Chairman")
	chairlady := env.addCandidate(t, "Clara", "Chairlady")

	voter := &Voter{PhoneNumber: "+23276000001"}
	require.NoError(t, env.voterRepo.Create(ctx, voter))
	for _, candidate := range []*Candidate{chairman, chairlady} {
		require.NoError(t, env.ballotRepo.Create(ctx, &Ballot{
			VoterID:     voter.ID,
			CandidateID: candidate.ID,
			Position:    candidate.Position,
		}))
	}

	report, err := env.controller.Turnout(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.VotedCount, "two ballots from one voter count once")
	assert.Equal(t, 100.0, report.Percentage)
}

func TestResultsController_Summary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.addCandidate(t, "Alice", "Chairman")
	env.addCandidate(t, "Bob", "Chairman")
	env.castBallots(t, alice, 2)

	// Pin the clock a little over three hours past the first ballot so the
	// whole-hours duration is stable.
	env.controller.now = func() time.Time { return time.Now().Add(3*time.Hour + time.Minute) }

	summary, err := env.controller.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Election", summary.ElectionTitle)
	assert.Equal(t, "Alice", summary.WinnerName)
	assert.Equal(t, int64(2), summary.TotalVotes)
	assert.Equal(t, int64(2), summary.CandidateCount)
	assert.Equal(t, int64(3), summary.DurationHours)
	assert.Equal(t, 100.0, summary.Turnout.Percentage)
	require.Len(t, summary.Sections, 1)
}

func TestResultsController_Summary_Empty(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.controller.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "—", summary.WinnerName)
	assert.Zero(t, summary.TotalVotes)
	assert.Zero(t, summary.DurationHours)
	assert.Empty(t, summary.Overall)
}
