//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/internal/domain/repository"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

var (
	sharedOnce    sync.Once
	sharedInitErr error
	sharedPool    *pgxpool.Pool
	sharedCtr     *postgres.PostgresContainer
)

func TestMain(m *testing.M) {
	code := m.Run()
	if sharedPool != nil {
		sharedPool.Close()
	}
	if err := testcontainers.TerminateContainer(sharedCtr); err != nil {
		code = 1
	}
	os.Exit(code)
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "migrations")
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	sharedOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		container, err := postgres.Run(ctx, "postgres:16-alpine",
			postgres.WithDatabase("events"),
			postgres.WithUsername("events"),
			postgres.WithPassword("events"),
			postgres.BasicWaitStrategies(),
		)
		sharedCtr = container
		if err != nil {
			sharedInitErr = err
			return
		}
		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			sharedInitErr = err
			return
		}
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		if err := MigrateUp(dsn, migrationsDir(), logger); err != nil {
			sharedInitErr = err
			return
		}
		sharedPool, sharedInitErr = NewPool(ctx, dsn, PoolOptions{AppName: "repository-tests", MaxConns: 5, MinConns: 1})
	})
	require.NoError(t, sharedInitErr)

	_, err := sharedPool.Exec(context.Background(), `TRUNCATE registrations, events, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return sharedPool
}

type fixture struct {
	users  *UserRepository
	events *EventRepository
	regs   *RegistrationRepository
}

func newFixture(t *testing.T) fixture {
	pool := setupPostgres(t)
	return fixture{
		users:  NewUserRepository(pool),
		events: NewEventRepository(pool),
		regs:   NewRegistrationRepository(pool),
	}
}

func (f fixture) user(t *testing.T, email string) *entity.User {
	t.Helper()
	u := &entity.User{Name: email, Email: email, Password: "hash"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f fixture) event(t *testing.T, name, organizerID string) *entity.Event {
	t.Helper()
	e := &entity.Event{
		Name:        name,
		Description: "desc",
		Category:    "tech",
		Date:        time.Now().Add(365 * 24 * time.Hour).UTC().Truncate(time.Microsecond),
		Venue:       "Hall",
		Price:       12.5,
		OrganizerID: organizerID,
	}
	require.NoError(t, f.events.Create(context.Background(), e))
	return e
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.user(t, "Alice@Example.com")
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, entity.RoleUser, u.Role)

	got, err := f.users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.users.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = f.users.Create(ctx, &entity.User{Name: "dup", Email: "ALICE@example.com", Password: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_UpdatePartial(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "bob@example.com")

	name := "Bobby"
	admin := entity.RoleAdmin
	got, err := f.users.Update(context.Background(), u.ID, entity.UserPatch{Name: &name, Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, "Bobby", got.Name)
	assert.Equal(t, entity.RoleAdmin, got.Role)
	assert.Equal(t, "bob@example.com", got.Email)
}

func TestScenario_RegisterCountCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.user(t, "a@example.com")
	b := f.user(t, "b@example.com")
	e1 := f.event(t, "Annual Tech Conference", a.ID)

	_, err := f.regs.Create(ctx, e1.ID, b.ID)
	require.NoError(t, err)

	d, err := f.events.GetDetail(ctx, e1.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.RegistrationCount)
	assert.True(t, d.IsRegistered)
	assert.Equal(t, a.Email, d.Organizer.Email)

	d, err = f.events.GetDetail(ctx, e1.ID, "")
	require.NoError(t, err)
	assert.False(t, d.IsRegistered)

	_, err = f.regs.Create(ctx, e1.ID, b.ID)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, f.regs.Delete(ctx, e1.ID, b.ID))
	n, err := f.regs.CountByEvent(ctx, e1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	assert.ErrorIs(t, f.regs.Delete(ctx, e1.ID, b.ID), repository.ErrNotFound)

	_, err = f.regs.Create(ctx, e1.ID, b.ID)
	assert.NoError(t, err)
}

func TestRegistrationRepository_ConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a@example.com")
	e := f.event(t, "Race", a.ID)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.regs.Create(context.Background(), e.ID, a.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, repository.ErrDuplicate):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 7, dup)
}

func TestRegistrationRepository_MissingEvent(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a@example.com")

	_, err := f.regs.Create(context.Background(), "6b0e8d5e-3f8e-4a55-9d4e-0c2a4f5b1d11", a.ID)
	assert.ErrorIs(t, err, repository.ErrReferenceMissing)
}

func TestEventRepository_ListSearchAndPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "a@example.com")
	for _, name := range []string{"Annual Tech Conference", "Jazz Night", "TECHNO party", "50% off_sale", "Book club"} {
		f.event(t, name, a.ID)
	}

	items, total, err := f.events.List(ctx, repository.EventQuery{Search: "tech", Page: pagination.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	items, total, err = f.events.List(ctx, repository.EventQuery{Search: "%", Page: pagination.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "50% off_sale", items[0].Name)

	items, total, err = f.events.List(ctx, repository.EventQuery{Page: pagination.Params{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, items, 2)
	assert.Equal(t, 3, pagination.NewMeta(total, pagination.Params{Page: 2, Limit: 2}).TotalPages)

	items, _, err = f.events.List(ctx, repository.EventQuery{Page: pagination.Params{Page: 9, Limit: 2}})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestEventRepository_UpdateAndImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "a@example.com")
	e := f.event(t, "Old", a.ID)

	venue := "Main Hall"
	got, err := f.events.Update(ctx, e.ID, entity.EventPatch{Venue: &venue})
	require.NoError(t, err)
	assert.Equal(t, "Main Hall", got.Venue)
	assert.Equal(t, "Old", got.Name)

	require.NoError(t, f.events.SetImage(ctx, e.ID, "https://storage.googleapis.com/b/events/x.png"))
	got, err = f.events.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.googleapis.com/b/events/x.png", got.Image)

	_, err = f.events.Update(ctx, "6b0e8d5e-3f8e-4a55-9d4e-0c2a4f5b1d11", entity.EventPatch{Venue: &venue})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventRepository_DeleteRemovesRegistrations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "a@example.com")
	b := f.user(t, "b@example.com")
	e := f.event(t, "Gone", a.ID)
	_, err := f.regs.Create(ctx, e.ID, b.ID)
	require.NoError(t, err)

	require.NoError(t, f.events.DeleteWithRegistrations(ctx, e.ID))

	var orphans int
	require.NoError(t, sharedPool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, e.ID).Scan(&orphans))
	assert.Zero(t, orphans)
	assert.ErrorIs(t, f.events.DeleteWithRegistrations(ctx, e.ID), repository.ErrNotFound)
}

func TestUserRepository_DeleteWithCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "a@example.com")
	b := f.user(t, "b@example.com")
	e := f.event(t, "Organized by A", a.ID)
	other := f.event(t, "Organized by B", b.ID)
	_, err := f.regs.Create(ctx, e.ID, b.ID)
	require.NoError(t, err)
	_, err = f.regs.Create(ctx, other.ID, a.ID)
	require.NoError(t, err)

	require.NoError(t, f.users.DeleteWithCascade(ctx, a.ID))

	_, err = f.events.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	n, err := f.regs.CountByEvent(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	regs, total, err := f.regs.ListByEvent(ctx, other.ID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, regs)
}
