package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/emulator/ports"
)

// Integration tests run against a live server when SKILLNET_TEST_MONGO_URI
// is set. Each run uses a throwaway database.
func testRepositories(t *testing.T) *Repositories {
	t.Helper()
	uri := os.Getenv("SKILLNET_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SKILLNET_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: "skillnet_test_" + uuid.NewString()[:8]})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	repos := NewRepositories(db)
	require.NoError(t, repos.EnsureIndexes(ctx))
	return repos
}

func TestConnect_Unreachable(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{
		URI:      "mongodb://127.0.0.1:1",
		Database: "skillnet",
		Timeout:  200 * time.Millisecond,
	})
	assert.Error(t, err)
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	repos := testRepositories(t)
	ctx := context.Background()

	u := &domain.User{ID: uuid.NewString(), Name: "Ana", Email: "ana@example.com", Role: "client", CreatedAt: time.Now()}
	_, err := repos.Users.Create(ctx, u)
	require.NoError(t, err)

	_, err = repos.Users.Create(ctx, &domain.User{ID: uuid.NewString(), Email: "ana@example.com", Role: "client"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	got, err := repos.Users.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	counts, err := repos.Users.CountByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["client"])
}

func TestProviderRepository_SearchIgnoresAccents(t *testing.T) {
	repos := testRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Providers.Create(ctx, &domain.ServiceProvider{
		ID:       "p1",
		Name:     "Juan Pérez",
		Category: domain.Ref{ID: "plumbing", Name: "Plomería"},
	}))

	found, err := repos.Providers.Search(ctx, "perez")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Juan Pérez", found[0].Name)

	found, err = repos.Providers.Search(ctx, "plomeria")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = repos.Providers.Search(ctx, "(.*)")
	require.NoError(t, err)
	assert.Empty(t, found)

	assert.ErrorIs(t, repos.Providers.Delete(ctx, "missing"), domain.ErrProviderNotFound)
}

func TestAppointmentRepository_SlotAndStatus(t *testing.T) {
	repos := testRepositories(t)
	ctx := context.Background()
	now := time.Now().UTC()

	a := &domain.Appointment{
		ID:        "a1",
		Date:      "2026-10-20",
		Hour:      "09:00",
		Status:    domain.StatusPending,
		Client:    domain.Ref{ID: "c1"},
		Provider:  domain.Ref{ID: "p1"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repos.Appointments.Create(ctx, a))

	dup := *a
	dup.ID = "a2"
	assert.ErrorIs(t, repos.Appointments.Create(ctx, &dup), domain.ErrSlotTaken)

	hours, err := repos.Appointments.BookedHours(ctx, "p1", "2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, hours)

	_, err = repos.Appointments.UpdateStatus(ctx, "a1", domain.StatusConfirmed, domain.StatusCancel, now)
	assert.ErrorIs(t, err, domain.ErrConflict)

	updated, err := repos.Appointments.UpdateStatus(ctx, "a1", domain.StatusPending, domain.StatusCancel, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancel, updated.Status)

	// A cancelled appointment releases its hour.
	require.NoError(t, repos.Appointments.Create(ctx, &dup))

	list, err := repos.Appointments.List(ctx, ports.AppointmentFilter{ClientID: "c1"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	counts, err := repos.Appointments.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[domain.StatusCancel])
	assert.Equal(t, 1, counts[domain.StatusPending])
}
