package sqlstore_test

import (
	"context"
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

func newTask(t *testing.T, owner uuid.UUID, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(owner, title, "", "", "", nil, nil)
	require.NoError(t, err)
	return task
}

type taskFixture struct {
	ctx   context.Context
	tasks *sqlstore.TaskStore
	owner *domain.User
	other *domain.User
}

func setupTasks(t *testing.T) taskFixture {
	t.Helper()
	db := testdb.Open(t)
	users := sqlstore.NewUserStore(db, nil)
	ctx := context.Background()

	owner := newUser(t, "owner@example.com")
	other := newUser(t, "other@example.com")
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, other))

	return taskFixture{ctx: ctx, tasks: sqlstore.NewTaskStore(db, nil), owner: owner, other: other}
}

func TestTaskStore_CreateAndGet(t *testing.T) {
	t.Parallel()
	f := setupTasks(t)

	due := time.Date(2030, 6, 1, 9, 30, 0, 0, time.UTC)
	task, err := domain.NewTask(f.owner.ID, "Write spec", "with details", domain.StatusInProgress,
		domain.PriorityHigh, &due, []string{"work", "urgent"})
	require.NoError(t, err)
	require.NoError(t, f.tasks.Create(f.ctx, task))

	got, err := f.tasks.GetByID(f.ctx, f.owner.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, f.owner.ID, got.UserID)
	assert.Equal(t, "Write spec", got.Title)
	assert.Equal(t, "with details", got.Description)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))
	assert.Equal(t, []string{"work", "urgent"}, got.Tags)

	plain := newTask(t, f.owner.ID, "No extras")
	require.NoError(t, f.tasks.Create(f.ctx, plain))
	got, err = f.tasks.GetByID(f.ctx, f.owner.ID, plain.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
}

func TestTaskStore_OwnershipIsolation(t *testing.T) {
	t.Parallel()
	f := setupTasks(t)

	task := newTask(t, f.owner.ID, "Private task")
	require.NoError(t, f.tasks.Create(f.ctx, task))

	_, err := f.tasks.GetByID(f.ctx, f.other.ID, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = f.tasks.GetByID(f.ctx, f.owner.ID, uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	hijack := *task
	hijack.UserID = f.other.ID
	hijack.Title = "Hijacked"
	assert.ErrorIs(t, f.tasks.Update(f.ctx, &hijack), store.ErrTaskNotFound)

	assert.ErrorIs(t, f.tasks.Delete(f.ctx, f.other.ID, task.ID), store.ErrTaskNotFound)

	list, err := f.tasks.List(f.ctx, f.other.ID, domain.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := f.tasks.GetByID(f.ctx, f.owner.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private task", got.Title)
}

func TestTaskStore_CreateForUnknownOwner(t *testing.T) {
	t.Parallel()
	f := setupTasks(t)

	err := f.tasks.Create(f.ctx, newTask(t, uuid.New(), "Nobody owns me"))
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestTaskStore_List(t *testing.T) {
	t.Parallel()
	f := setupTasks(t)

	mk := func(title, desc string, st domain.TaskStatus, pr domain.TaskPriority) *domain.Task {
		task, err := domain.NewTask(f.owner.ID, title, desc, st, pr, nil, nil)
		require.NoError(t, err)
		require.NoError(t, f.tasks.Create(f.ctx, task))
		return task
	}
	mk("Buy milk", "", domain.StatusTodo, domain.PriorityLow)
	mk("Fix bug", "the MILK parser", domain.StatusInProgress, domain.PriorityHigh)
	mk("Ship release", "100% done", domain.StatusDone, domain.PriorityHigh)
	mk("under_score", "", domain.StatusTodo, domain.PriorityMedium)
	require.NoError(t, f.tasks.Create(f.ctx, newTask(t, f.other.ID, "Other milk")))

	titles := func(filter domain.TaskFilter) []string {
		list, err := f.tasks.List(f.ctx, f.owner.ID, filter)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, task := range list {
			out = append(out, task.Title)
		}
		return out
	}

	assert.Len(t, titles(domain.TaskFilter{}), 4)
	assert.ElementsMatch(t, []string{"Buy milk", "under_score"},
		titles(domain.TaskFilter{Status: domain.StatusTodo}))
	assert.ElementsMatch(t, []string{"Fix bug", "Ship release"},
		titles(domain.TaskFilter{Priority: domain.PriorityHigh}))
	assert.ElementsMatch(t, []string{"Buy milk", "Fix bug"},
		titles(domain.TaskFilter{Search: "Milk"}), "search is case-insensitive over title and description")
	assert.ElementsMatch(t, []string{"Fix bug"},
		titles(domain.TaskFilter{Search: "milk", Status: domain.StatusInProgress, Priority: domain.PriorityHigh}))
	assert.ElementsMatch(t, []string{"Ship release"},
		titles(domain.TaskFilter{Search: "100%"}), "wildcards in the search term match literally")
	assert.ElementsMatch(t, []string{"under_score"},
		titles(domain.TaskFilter{Search: "_"}))
	assert.Len(t, titles(domain.TaskFilter{Status: "archived"}), 4, "invalid status filters are ignored")
	assert.Empty(t, titles(domain.TaskFilter{Search: "nothing matches"}))
}

func TestTaskStore_ListSearchFoldsNonASCII(t *testing.T) {
	t.Parallel()
	f := setupTasks(t)

	for _, title := range []string{"ÉCOLE homework", "Überweisung prüfen", "plain title"} {
		require.NoError(t, f.tasks.Create(f.ctx, newTask(t, f.owner.ID, title)))
	}

	search := func(term string) []string {
		list, err := f.tasks.List(f.ctx, f.owner.ID, domain.TaskFilter{Search: term})
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, task := range list {
			out = append(out, task.Title)
		}
		return out
	}

	assert.Equal(t, []string{"ÉCOLE homework"}, search("école"))
	assert.Equal(t, []string{"ÉCOLE homework"}, search("ÉCOLE"))
	assert.Equal(t, []string{"Überweisung prüfen"}, search("ÜBERWEISUNG"))
}

func TestTaskStore_Update(t *testing.T) {
	t.Parallel()
	f := setupTasks(t)

	due := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	task, err := domain.NewTask(f.owner.ID, "Draft", "", "", "", &due, []string{"a"})
	require.NoError(t, err)
	require.NoError(t, f.tasks.Create(f.ctx, task))

	done := domain.StatusDone
	title := "Final"
	updated, err := task.ApplyPatch(domain.TaskPatch{
		Title:        &title,
		Status:       &done,
		ClearDueDate: true,
		Tags:         &[]string{"b", "c"},
	}, task.UpdatedAt.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, f.tasks.Update(f.ctx, updated))

	got, err := f.tasks.GetByID(f.ctx, f.owner.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Nil(t, got.DueDate)
	assert.Equal(t, []string{"b", "c"}, got.Tags)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestTaskStore_DeleteAndDeleteByOwner(t *testing.T) {
	t.Parallel()
	f := setupTasks(t)

	a := newTask(t, f.owner.ID, "Task A")
	b := newTask(t, f.owner.ID, "Task B")
	c := newTask(t, f.other.ID, "Task C")
	for _, task := range []*domain.Task{a, b, c} {
		require.NoError(t, f.tasks.Create(f.ctx, task))
	}

	require.NoError(t, f.tasks.Delete(f.ctx, f.owner.ID, a.ID))
	assert.ErrorIs(t, f.tasks.Delete(f.ctx, f.owner.ID, a.ID), store.ErrTaskNotFound)

	n, err := f.tasks.DeleteByOwner(f.ctx, f.owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = f.tasks.GetByID(f.ctx, f.other.ID, c.ID)
	assert.NoError(t, err, "other users' tasks survive")
}

func TestTaskStore_CountByOwner(t *testing.T) {
	t.Parallel()
	f := setupTasks(t)

	empty, err := f.tasks.CountByOwner(f.ctx, f.owner.ID, time.Now().Add(-domain.RecentActivityWindow))
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCounts{}, empty)

	now := time.Now().UTC()
	specs := []struct {
		status   domain.TaskStatus
		priority domain.TaskPriority
		age      time.Duration
	}{
		{domain.StatusTodo, domain.PriorityHigh, time.Hour},
		{domain.StatusInProgress, domain.PriorityHigh, 2 * time.Hour},
		{domain.StatusDone, domain.PriorityHigh, 3 * time.Hour},
		{domain.StatusDone, domain.PriorityLow, 10 * 24 * time.Hour},
		{domain.StatusTodo, domain.PriorityMedium, 30 * 24 * time.Hour},
	}
	for i, s := range specs {
		task, err := domain.NewTask(f.owner.ID, "Counted task", "", s.status, s.priority, nil, nil)
		require.NoError(t, err, "spec %d", i)
		task.CreatedAt = now.Add(-s.age)
		task.UpdatedAt = task.CreatedAt
		require.NoError(t, f.tasks.Create(f.ctx, task))
	}
	require.NoError(t, f.tasks.Create(f.ctx, newTask(t, f.other.ID, "Not counted")))

	c, err := f.tasks.CountByOwner(f.ctx, f.owner.ID, now.Add(-domain.RecentActivityWindow))
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCounts{
		Total:            5,
		Todo:             2,
		InProgress:       1,
		Done:             2,
		Low:              1,
		Medium:           1,
		High:             3,
		HighPriorityOpen: 2,
		Recent:           3,
	}, c)
}
