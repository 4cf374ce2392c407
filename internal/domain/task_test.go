package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTaskDefaults(t *testing.T) {
	owner := uuid.New()
	task, err := NewTask(owner, "  Write spec ", "", "", "", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Title != "Write spec" {
		t.Errorf("Expected trimmed title, got %q", task.Title)
	}
	if task.Status != StatusTodo {
		t.Errorf("Expected default status todo, got %s", task.Status)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("Expected default priority medium, got %s", task.Priority)
	}
	if task.Tags == nil || len(task.Tags) != 0 {
		t.Errorf("Expected empty non-nil tags, got %#v", task.Tags)
	}
	if task.UserID != owner {
		t.Errorf("Expected owner %s, got %s", owner, task.UserID)
	}
	if task.DueDate != nil {
		t.Errorf("Expected no due date, got %v", task.DueDate)
	}
}

func TestNewTaskValidation(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name  string
		title string
		desc  string
		st    TaskStatus
		pr    TaskPriority
		tags  []string
		field string
	}{
		{"short title", "ab", "", "", "", nil, "title"},
		{"blank title", "   ", "", "", "", nil, "title"},
		{"long title", strings.Repeat("x", 201), "", "", "", nil, "title"},
		{"long description", "Valid", strings.Repeat("d", 501), "", "", nil, "description"},
		{"bad status", "Valid", "", "archived", "", nil, "status"},
		{"bad priority", "Valid", "", "", "urgent", nil, "priority"},
		{"empty tag", "Valid", "", "", "", []string{"ok", " "}, "tags"},
		{"long tag", "Valid", "", "", "", []string{strings.Repeat("t", 51)}, "tags"},
		{"too many tags", "Valid", "", "", "", make21Tags(), "tags"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(owner, tt.title, tt.desc, tt.st, tt.pr, nil, tt.tags)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %v", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("Expected field %s in %v", tt.field, verr.Fields)
			}
		})
	}

	// Boundary values are accepted
	if _, err := NewTask(owner, "abc", strings.Repeat("d", 500), StatusDone, PriorityHigh, nil,
		[]string{strings.Repeat("t", 50)}); err != nil {
		t.Errorf("Expected boundary values to be accepted, got %v", err)
	}
}

func make21Tags() []string {
	tags := make([]string, 21)
	for i := range tags {
		tags[i] = "tag"
	}
	return tags
}

func TestApplyPatch(t *testing.T) {
	due := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	task, err := NewTask(uuid.New(), "Original", "desc", StatusTodo, PriorityLow, &due, []string{"a"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	now := task.UpdatedAt.Add(time.Minute)

	status := StatusDone
	updated, err := task.ApplyPatch(TaskPatch{Status: &status}, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Status != StatusDone {
		t.Errorf("Expected status done, got %s", updated.Status)
	}
	if updated.Title != "Original" || updated.Priority != PriorityLow || updated.Description != "desc" {
		t.Errorf("Expected untouched fields to be preserved, got %+v", updated)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Errorf("Expected due date preserved, got %v", updated.DueDate)
	}
	if !updated.UpdatedAt.Equal(now) {
		t.Errorf("Expected UpdatedAt %v, got %v", now, updated.UpdatedAt)
	}
	if task.Status != StatusTodo {
		t.Error("Expected original task to be unchanged")
	}

	cleared, err := task.ApplyPatch(TaskPatch{ClearDueDate: true, Tags: &[]string{}}, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cleared.DueDate != nil {
		t.Errorf("Expected cleared due date, got %v", cleared.DueDate)
	}
	if cleared.Tags == nil || len(cleared.Tags) != 0 {
		t.Errorf("Expected empty tags, got %#v", cleared.Tags)
	}

	short := "no"
	if _, err := task.ApplyPatch(TaskPatch{Title: &short}, now); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for short title, got %v", err)
	}

	if !(TaskPatch{}).IsEmpty() {
		t.Error("Expected zero patch to be empty")
	}
}

func TestTaskFilterNormalize(t *testing.T) {
	f := TaskFilter{Status: "bogus", Priority: PriorityHigh, Search: "  milk "}.Normalize()
	if f.Status != "" {
		t.Errorf("Expected invalid status dropped, got %q", f.Status)
	}
	if f.Priority != PriorityHigh {
		t.Errorf("Expected priority kept, got %q", f.Priority)
	}
	if f.Search != "milk" {
		t.Errorf("Expected trimmed search, got %q", f.Search)
	}
}

func TestParseTaskSort(t *testing.T) {
	if got := ParseTaskSort("", ""); got != DefaultTaskSort {
		t.Errorf("Expected default sort, got %+v", got)
	}
	if got := ParseTaskSort("bogus", "ASC"); got != (TaskSort{Field: SortByCreatedAt, Order: SortAsc}) {
		t.Errorf("Expected createdAt asc, got %+v", got)
	}
	if got := ParseTaskSort("priority", "sideways"); got != (TaskSort{Field: SortByPriority, Order: SortDesc}) {
		t.Errorf("Expected priority desc, got %+v", got)
	}
}

func TestSortTasks(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	due := base.Add(48 * time.Hour)

	mk := func(title string, p TaskPriority, created time.Time, dueDate *time.Time) *Task {
		return &Task{ID: uuid.New(), Title: title, Priority: p, CreatedAt: created, DueDate: dueDate}
	}
	a := mk("banana", PriorityLow, base, &due)
	b := mk("Apple", PriorityHigh, base.Add(time.Hour), nil)
	c := mk("cherry", PriorityMedium, base.Add(2*time.Hour), &base)

	titles := func(tasks []*Task) string {
		out := make([]string, len(tasks))
		for i, task := range tasks {
			out[i] = task.Title
		}
		return strings.Join(out, ",")
	}

	tests := []struct {
		sort TaskSort
		want string
	}{
		{DefaultTaskSort, "cherry,Apple,banana"},
		{TaskSort{Field: SortByCreatedAt, Order: SortAsc}, "banana,Apple,cherry"},
		{TaskSort{Field: SortByTitle, Order: SortAsc}, "Apple,banana,cherry"},
		{TaskSort{Field: SortByPriority, Order: SortDesc}, "Apple,cherry,banana"},
		{TaskSort{Field: SortByPriority, Order: SortAsc}, "banana,cherry,Apple"},
		// missing due date sorts as epoch, i.e. first ascending
		{TaskSort{Field: SortByDueDate, Order: SortAsc}, "Apple,cherry,banana"},
		{TaskSort{Field: SortByDueDate, Order: SortDesc}, "banana,cherry,Apple"},
	}

	for _, tt := range tests {
		tasks := []*Task{a, b, c}
		SortTasks(tasks, tt.sort)
		if got := titles(tasks); got != tt.want {
			t.Errorf("SortTasks(%+v) = %s, want %s", tt.sort, got, tt.want)
		}
	}
}
