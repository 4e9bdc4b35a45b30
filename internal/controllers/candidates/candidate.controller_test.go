package candidateController

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

func newTestController(t *testing.T) *CandidateController {
	t.Helper()

	cfg := config.Config{DatabaseDbPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.NewSQLOnly(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(repositories.NewCandidate(db))
}

func TestCandidateController_Add(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	candidate, err := controller.Add(ctx, &CandidateRequest{
		Name:     "  Alice Kamara  ",
		Nickname: "Ally",
		Position: "Chairman",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Kamara", candidate.Name, "surrounding whitespace is trimmed")
	assert.Equal(t, "Chairman", candidate.Position)
	assert.NotEmpty(t, candidate.ID)
}

func TestCandidateController_Add_NameRequired(t *testing.T) {
	controller := newTestController(t)

	for _, name := range []string{"", "   "} {
		_, err := controller.Add(context.Background(), &CandidateRequest{Name: name, Position: "Chairman"})
		assert.ErrorIs(t, err, ErrCandidateNameRequired)
	}
}

func TestCandidateController_Add_DefaultPosition(t *testing.T) {
	controller := newTestController(t)

	candidate, err := controller.Add(context.Background(), &CandidateRequest{Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, DefaultPosition, candidate.Position)
}

func TestCandidateController_Edit_BlankFieldsKeepPrior(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	candidate, err := controller.Add(ctx, &CandidateRequest{
		Name:        "Alice Kamara",
		Nickname:    "Ally",
		Position:    "Chairman",
		Description: "Incumbent.",
	})
	require.NoError(t, err)

	// Only the nickname is supplied; everything else, position included, must
	// survive untouched rather than reset to defaults.
	updated, err := controller.Edit(ctx, candidate.ID, &CandidateRequest{Nickname: "AK"})
	require.NoError(t, err)
	assert.Equal(t, "Alice Kamara", updated.Name)
	assert.Equal(t, "AK", updated.Nickname)
	assert.Equal(t, "Chairman", updated.Position)
	assert.Equal(t, "Incumbent.", updated.Description)
}

func TestCandidateController_Edit_NotFound(t *testing.T) {
	controller := newTestController(t)

	_, err := controller.Edit(context.Background(), "missing", &CandidateRequest{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestCandidateController_ListGroupedByPosition(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	for _, seed := range []struct{ name, position string }{
		{"Zainab", "Chairman"},
		{"Alice", "Chairman"},
		{"Clara", "Chairlady"},
	} {
		_, err := controller.Add(ctx, &CandidateRequest{Name: seed.name, Position: seed.position})
		require.NoError(t, err)
	}

	positions, grouped, err := controller.ListGroupedByPosition(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"Chairlady", "Chairman"}, positions)
	require.Len(t, grouped["Chairman"], 2)
	assert.Equal(t, "Alice", grouped["Chairman"][0].Name, "candidates sort by name within a section")
	assert.Equal(t, "Zainab", grouped["Chairman"][1].Name)
}
