package electionController

import (
	"context"
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

func newTestController(t *testing.T) (*ElectionController, repositories.ElectionRepository) {
	t.Helper()

	cfg := config.Config{DatabaseDbPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.NewSQLOnly(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repositories.NewElection(db)
	return New(repo), repo
}

func ptr[T any](v T) *T {
	return &v
}

func TestElectionController_Settings_CreatesDefaults(t *testing.T) {
	controller, _ := newTestController(t)

	settings, err := controller.Settings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ElectionSettingsID, settings.ID)
	assert.Equal(t, "Election", settings.Title)
	assert.Equal(t, "UTC", settings.Timezone)
	assert.True(t, settings.Active)
	assert.Nil(t, settings.StartsAt)
	assert.Nil(t, settings.EndsAt)
}

func TestElectionController_Status_States(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		active   bool
		startsAt *time.Time
		endsAt   *time.Time
		expected ElectionState
	}{
		{
			name:     "no bounds and active is open",
			active:   true,
			expected: ElectionOpen,
		},
		{
			name:     "inactive overrides an open window",
			active:   false,
			startsAt: ptr(now.Add(-time.Hour)),
			endsAt:   ptr(now.Add(time.Hour)),
			expected: ElectionDisabled,
		},
		{
			name:     "before the start bound",
			active:   true,
			startsAt: ptr(now.Add(time.Hour)),
			expected: ElectionNotStarted,
		},
		{
			name:     "after the end bound",
			active:   true,
			endsAt:   ptr(now.Add(-time.Hour)),
			expected: ElectionEnded,
		},
		{
			name:     "inside the window",
			active:   true,
			startsAt: ptr(now.Add(-time.Hour)),
			endsAt:   ptr(now.Add(time.Hour)),
			expected: ElectionOpen,
		},
		{
			name:     "start bound only, already past",
			active:   true,
			startsAt: ptr(now.Add(-time.Minute)),
			expected: ElectionOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, repo := newTestController(t)
			controller.now = func() time.Time { return now }
			ctx := context.Background()

			settings, err := repo.Get(ctx)
			require.NoError(t, err)
			settings.Active = tt.active
			settings.StartsAt = tt.startsAt
			settings.EndsAt = tt.endsAt
			require.NoError(t, repo.Update(ctx, settings))

			status, err := controller.Status(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status.State)
		})
	}
}

func TestElectionController_CanVote(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	controller, repo := newTestController(t)
	controller.now = func() time.Time { return now }
	ctx := context.Background()

	assert.NoError(t, controller.CanVote(ctx), "default settings keep the gate open")

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	settings.EndsAt = ptr(now.Add(-time.Hour))
	require.NoError(t, repo.Update(ctx, settings))

	err = controller.CanVote(ctx)
	closed, ok := IsGateClosed(err)
	require.True(t, ok)
	assert.Equal(t, ElectionEnded, closed.State)
	require.NotNil(t, closed.At)
	assert.True(t, closed.At.Equal(*settings.EndsAt), "gate error carries the violated bound")

	settings.Active = false
	require.NoError(t, repo.Update(ctx, settings))

	err = controller.CanVote(ctx)
	closed, ok = IsGateClosed(err)
	require.True(t, ok)
	assert.Equal(t, ElectionDisabled, closed.State)
}

func TestElectionController_UpdateSettings_Partial(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	updated, err := controller.UpdateSettings(ctx, &UpdateElectionSettingsRequest{
		Title:    ptr("Annual General Meeting"),
		StartsAt: ptr("2026-03-15T08:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Annual General Meeting", updated.Title)
	require.NotNil(t, updated.StartsAt)
	assert.True(t, updated.Active, "untouched fields keep their values")

	// A second partial update must not disturb the start bound.
	updated, err = controller.UpdateSettings(ctx, &UpdateElectionSettingsRequest{
		Description: ptr("Vote for your section leads."),
	})
	require.NoError(t, err)
	assert.Equal(t, "Annual General Meeting", updated.Title)
	assert.NotNil(t, updated.StartsAt)
	assert.Equal(t, "Vote for your section leads.", updated.Description)
}

func TestElectionController_UpdateSettings_TimezoneAwareBounds(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	updated, err := controller.UpdateSettings(ctx, &UpdateElectionSettingsRequest{
		Timezone: ptr("Africa/Freetown"),
		StartsAt: ptr("2026-03-15T08:00"),
	})
	require.NoError(t, err)

	loc, err := time.LoadLocation("Africa/Freetown")
	require.NoError(t, err)
	require.NotNil(t, updated.StartsAt)
	assert.True(t, updated.StartsAt.Equal(time.Date(2026, 3, 15, 8, 0, 0, 0, loc)),
		"local-format bounds parse in the configured zone")
}

func TestElectionController_UpdateSettings_ClearBound(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	updated, err := controller.UpdateSettings(ctx, &UpdateElectionSettingsRequest{
		EndsAt: ptr("2026-03-15T20:00"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.EndsAt)

	updated, err = controller.UpdateSettings(ctx, &UpdateElectionSettingsRequest{
		EndsAt: ptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.EndsAt, "empty string clears the bound")
}

func TestElectionController_UpdateSettings_Rejections(t *testing.T) {
	controller, repo := newTestController(t)
	ctx := context.Background()

	_, err := controller.UpdateSettings(ctx, &UpdateElectionSettingsRequest{
		Timezone: ptr("Mars/Olympus_Mons"),
	})
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = controller.UpdateSettings(ctx, &UpdateElectionSettingsRequest{
		Title:    ptr("Should not land"),
		StartsAt: ptr("not-a-timestamp"),
	})
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Election", settings.Title, "a rejected update writes nothing")
}
