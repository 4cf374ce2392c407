package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlstore"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Test User", email, "$2a$04$fakehashfakehashfakehashfakehashfakehashfakehashfake")
	require.NoError(t, err)
	return user
}

func TestUserStore_CreateAndGet(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	users := sqlstore.NewUserStore(db, nil)
	ctx := context.Background()

	user := newUser(t, "Ann@Example.com")
	require.NoError(t, users.Create(ctx, user))

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byID.ID)
	assert.Equal(t, "Test User", byID.Name)
	assert.Equal(t, "ann@example.com", byID.Email)
	assert.Equal(t, user.HashedPassword, byID.HashedPassword)
	assert.Equal(t, domain.RoleMember, byID.Role)
	assert.WithinDuration(t, user.CreatedAt, byID.CreatedAt, time.Millisecond)

	byEmail, err := users.GetByEmail(ctx, "  ANN@example.COM ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	users := sqlstore.NewUserStore(db, nil)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, newUser(t, "dup@example.com")))

	err := users.Create(ctx, newUser(t, "DUP@example.com"))
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestUserStore_CreateInvalid(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	users := sqlstore.NewUserStore(db, nil)

	user := newUser(t, "valid@example.com")
	user.Name = ""

	err := users.Create(context.Background(), user)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserStore_NotFound(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	users := sqlstore.NewUserStore(db, nil)
	ctx := context.Background()

	_, err := users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	err = users.Update(ctx, newUser(t, "ghost@example.com"))
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	err = users.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStore_Update(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	users := sqlstore.NewUserStore(db, nil)
	ctx := context.Background()

	first := newUser(t, "first@example.com")
	second := newUser(t, "second@example.com")
	require.NoError(t, users.Create(ctx, first))
	require.NoError(t, users.Create(ctx, second))

	first.Name = "Renamed"
	first.Email = "renamed@example.com"
	first.UpdatedAt = first.UpdatedAt.Add(time.Minute)
	require.NoError(t, users.Update(ctx, first))

	got, err := users.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "renamed@example.com", got.Email)
	assert.WithinDuration(t, first.UpdatedAt, got.UpdatedAt, time.Millisecond)

	second.Email = "renamed@example.com"
	err = users.Update(ctx, second)
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserStore_DeleteCascadesTasks(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	users := sqlstore.NewUserStore(db, nil)
	tasks := sqlstore.NewTaskStore(db, nil)
	ctx := context.Background()

	user := newUser(t, "cascade@example.com")
	require.NoError(t, users.Create(ctx, user))
	task := newTask(t, user.ID, "Orphan candidate")
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, users.Delete(ctx, user.ID))

	_, err := users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	_, err = tasks.GetByID(ctx, user.ID, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestUserStore_WithTxRollback(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	users := sqlstore.NewUserStore(db, nil)
	ctx := context.Background()

	user := newUser(t, "tx@example.com")
	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		require.NoError(t, users.WithTx(tx).Create(ctx, user))
		_, err := users.WithTx(tx).GetByID(ctx, user.ID)
		require.NoError(t, err)
	})

	_, err := users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
