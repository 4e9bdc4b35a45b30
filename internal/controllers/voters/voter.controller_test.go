package voterController

import (
	"context"
	"path/filepath"
	"server/config"
	"server/internal/database"
	. "server/internal/models"
	"server/internal/repositories"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGate struct {
	err error
}

func (g stubGate) CanVote(ctx context.Context) error {
	return g.err
}

type testEnv struct {
	voterRepo  repositories.VoterRepository
	ballotRepo repositories.BallotRepository
	controller *VoterController
}

func newTestEnv(t *testing.T, gate Gate) *testEnv {
	t.Helper()

	cfg := config.Config{
		DatabaseDbPath:          filepath.Join(t.TempDir(), "test.db"),
		PhoneDefaultCountryCode: "232",
	}
	db, err := database.NewSQLOnly(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	voterRepo := repositories.NewVoter(db)
	return &testEnv{
		voterRepo:  voterRepo,
		ballotRepo: repositories.NewBallot(db),
		controller: New(voterRepo, nil, gate, cfg),
	}
}

func TestVoterController_Register(t *testing.T) {
	env := newTestEnv(t, stubGate{})
	ctx := context.Background()

	voter, err := env.controller.Register(ctx, "076-123-456")
	require.NoError(t, err)
	assert.Equal(t, "+23276123456", voter.PhoneNumber, "local numbers are stored in canonical form")
	assert.False(t, voter.HasVoted)
	assert.NotEmpty(t, voter.ID)
}

func TestVoterController_Register_DuplicateAcrossFormats(t *testing.T) {
	env := newTestEnv(t, stubGate{})
	ctx := context.Background()

	_, err := env.controller.Register(ctx, "+23276123456")
	require.NoError(t, err)

	// Same number in local format normalizes to the same key.
	_, err = env.controller.Register(ctx, "076123456")
	assert.ErrorIs(t, err, ErrVoterExists)

	total, err := env.voterRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestVoterController_Register_InvalidFormat(t *testing.T) {
	env := newTestEnv(t, stubGate{})
	ctx := context.Background()

	for _, input := range []string{"", "abc", "12"} {
		_, err := env.controller.Register(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidPhoneFormat, "input %q", input)
	}
}

func TestVoterController_BulkRegister_PartialSuccess(t *testing.T) {
	env := newTestEnv(t, stubGate{})
	ctx := context.Background()

	_, err := env.controller.Register(ctx, "+23276111111")
	require.NoError(t, err)

	raw := "076123456\n+447700900123, abc\n+23276111111\n\n 076123456 "
	result := env.controller.BulkRegister(ctx, raw)

	// 076123456 and the UK number succeed; "abc" is malformed, the
	// pre-registered number and the repeated local number are duplicates.
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 3, result.ErrorCount)
	require.Len(t, result.Errors, 3)

	reasons := make(map[string]string)
	for _, failure := range result.Errors {
		reasons[failure.Input] = failure.Reason
	}
	assert.Equal(t, "Invalid format", reasons["abc"])
	assert.Equal(t, "Already registered", reasons["+23276111111"])
	assert.Equal(t, "Already registered", reasons["076123456"])

	total, err := env.voterRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestVoterController_Login_GateClosed(t *testing.T) {
	gateErr := &GateClosedError{State: ElectionNotStarted}
	env := newTestEnv(t, stubGate{err: gateErr})
	ctx := context.Background()

	_, err := env.controller.Register(ctx, "076123456")
	require.NoError(t, err)

	_, _, err = env.controller.Login(ctx, "076123456")
	closed, ok := IsGateClosed(err)
	require.True(t, ok)
	assert.Equal(t, ElectionNotStarted, closed.State)
}

func TestVoterController_Login_UnknownPhone(t *testing.T) {
	env := newTestEnv(t, stubGate{})

	_, _, err := env.controller.Login(context.Background(), "076999999")
	assert.ErrorIs(t, err, ErrVoterNotFound)
}

func TestVoterController_Delete_CascadesOwnBallotsOnly(t *testing.T) {
	env := newTestEnv(t, stubGate{})
	ctx := context.Background()

	first, err := env.controller.Register(ctx, "076123456")
	require.NoError(t, err)
	second, err := env.controller.Register(ctx, "076123457")
	require.NoError(t, err)

	for _, voter := range []*Voter{first, second} {
		require.NoError(t, env.ballotRepo.Create(ctx, &Ballot{
			VoterID:     voter.ID,
			CandidateID: "candidate-1",
			Position:    "Chairman",
		}))
	}

	require.NoError(t, env.controller.Delete(ctx, first.ID))

	_, err = env.controller.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrVoterNotFound)

	remaining, err := env.ballotRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining, "only the deleted voter's ballots go with them")

	kept, err := env.ballotRepo.CountByVoter(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), kept)
}

func TestVoterController_Delete_NotFound(t *testing.T) {
	env := newTestEnv(t, stubGate{})

	err := env.controller.Delete(context.Background(), "missing-voter")
	assert.ErrorIs(t, err, ErrVoterNotFound)
}

func TestVoterController_Delete_FreesPhoneForReRegistration(t *testing.T) {
	env := newTestEnv(t, stubGate{})
	ctx := context.Background()

	voter, err := env.controller.Register(ctx, "076123456")
	require.NoError(t, err)
	require.NoError(t, env.controller.Delete(ctx, voter.ID))

	again, err := env.controller.Register(ctx, "076123456")
	require.NoError(t, err)
	assert.NotEqual(t, voter.ID, again.ID)
}

func TestVoterController_List_Tallies(t *testing.T) {
	env := newTestEnv(t, stubGate{})
	ctx := context.Background()

	first, err := env.controller.Register(ctx, "076123456")
	require.NoError(t, err)
	_, err = env.controller.Register(ctx, "076123457")
	require.NoError(t, err)

	require.NoError(t, env.voterRepo.MarkVoted(ctx, first.ID))

	voters, total, voted, err := env.controller.List(ctx)
	require.NoError(t, err)
	assert.Len(t, voters, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(1), voted)
}
