package domain

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Task field limits.
const (
	MinTitleLength       = 3
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxTagLength         = 50
	MaxTags              = 20
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

// Valid task statuses.
const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TaskPriority is the urgency of a task.
type TaskPriority string

// Valid task priorities.
const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// IsValid reports whether p is a known priority.
func (p TaskPriority) IsValid() bool {
	return p.Rank() > 0
}

// Rank orders priorities for sorting: high=3, medium=2, low=1, unknown=0.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	Tags        []string     `json:"tags"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewTask builds a task for userID, applying defaults for empty status and
// priority, trimming text fields, and validating the result.
func NewTask(
	userID uuid.UUID,
	title, description string,
	status TaskStatus,
	priority TaskPriority,
	dueDate *time.Time,
	tags []string,
) (*Task, error) {
	if status == "" {
		status = StatusTodo
	}
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      status,
		Priority:    priority,
		DueDate:     normalizeDueDate(dueDate),
		Tags:        NormalizeTags(tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks every field of the task and reports all failures at once.
func (t *Task) Validate() error {
	verr := &ValidationError{Err: ErrValidation}

	if t.ID == uuid.Nil {
		verr.Add("id", "is required")
	}
	if t.UserID == uuid.Nil {
		verr.Add("userId", "is required")
	}
	if msg := TitleProblem(t.Title); msg != "" {
		verr.Add("title", msg)
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		verr.Add("description", "Description cannot exceed 500 characters")
	}
	if !t.Status.IsValid() {
		verr.Add("status", "Status must be one of todo, in-progress, done")
	}
	if !t.Priority.IsValid() {
		verr.Add("priority", "Priority must be one of low, medium, high")
	}
	if msg := TagsProblem(t.Tags); msg != "" {
		verr.Add("tags", msg)
	}

	return verr.OrNil()
}

// TitleProblem returns a client-facing message when title is unusable, or "".
func TitleProblem(title string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	switch {
	case n == 0:
		return "Title is required"
	case n < MinTitleLength:
		return "Title must be at least 3 characters"
	case n > MaxTitleLength:
		return "Title cannot exceed 200 characters"
	}
	return ""
}

// TagsProblem returns a client-facing message when tags are unusable, or "".
func TagsProblem(tags []string) string {
	if len(tags) > MaxTags {
		return "A task cannot have more than 20 tags"
	}
	for _, tag := range tags {
		n := utf8.RuneCountInString(strings.TrimSpace(tag))
		if n == 0 {
			return "Tags cannot be empty"
		}
		if n > MaxTagLength {
			return "Each tag cannot exceed 50 characters"
		}
	}
	return ""
}

// NormalizeTags trims each tag and always returns a non-nil slice.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, strings.TrimSpace(tag))
	}
	return out
}

func normalizeDueDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	utc := d.UTC()
	return &utc
}

// TaskPatch is a partial update. Nil fields are left untouched.
// ClearDueDate removes the due date and takes precedence over DueDate.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Priority     *TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
	Tags         *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil && !p.ClearDueDate && p.Tags == nil
}

// ApplyPatch merges p into a copy of t, validates it, and returns the copy
// with UpdatedAt set to now. t itself is not modified.
func (t *Task) ApplyPatch(p TaskPatch, now time.Time) (*Task, error) {
	updated := *t
	updated.Tags = append([]string(nil), t.Tags...)

	if p.Title != nil {
		updated.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		updated.Description = strings.TrimSpace(*p.Description)
	}
	if p.Status != nil {
		updated.Status = *p.Status
	}
	if p.Priority != nil {
		updated.Priority = *p.Priority
	}
	if p.ClearDueDate {
		updated.DueDate = nil
	} else if p.DueDate != nil {
		updated.DueDate = normalizeDueDate(p.DueDate)
	}
	if p.Tags != nil {
		updated.Tags = NormalizeTags(*p.Tags)
	}
	if updated.Tags == nil {
		updated.Tags = []string{}
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	updated.UpdatedAt = now.UTC()
	return &updated, nil
}

// TaskFilter narrows a task listing. Zero values mean "no constraint".
type TaskFilter struct {
	Status   TaskStatus
	Priority TaskPriority
	Search   string
}

// Normalize drops filter values that are not valid enum members and trims
// the search term.
func (f TaskFilter) Normalize() TaskFilter {
	if !f.Status.IsValid() {
		f.Status = ""
	}
	if !f.Priority.IsValid() {
		f.Priority = ""
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// SortField names a sortable task attribute.
type SortField string

// Sortable fields.
const (
	SortByCreatedAt SortField = "createdAt"
	SortByTitle     SortField = "title"
	SortByPriority  SortField = "priority"
	SortByDueDate   SortField = "dueDate"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Sort directions.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskSort selects the ordering of a task listing.
type TaskSort struct {
	Field SortField
	Order SortOrder
}

// DefaultTaskSort is newest first.
var DefaultTaskSort = TaskSort{Field: SortByCreatedAt, Order: SortDesc}

// ParseTaskSort converts raw query values to a TaskSort. Unknown values fall
// back to the defaults independently.
func ParseTaskSort(field, order string) TaskSort {
	s := DefaultTaskSort
	switch SortField(field) {
	case SortByCreatedAt, SortByTitle, SortByPriority, SortByDueDate:
		s.Field = SortField(field)
	}
	switch SortOrder(strings.ToLower(order)) {
	case SortAsc:
		s.Order = SortAsc
	case SortDesc:
		s.Order = SortDesc
	}
	return s
}

// SortTasks orders tasks in place. The sort is stable so ties keep their
// incoming order. Titles are compared with a locale-aware collator and a
// missing due date sorts as the Unix epoch.
func SortTasks(tasks []*Task, s TaskSort) {
	s = ParseTaskSort(string(s.Field), string(s.Order))

	var less func(a, b *Task) int
	switch s.Field {
	case SortByTitle:
		col := collate.New(language.Und, collate.IgnoreCase)
		less = func(a, b *Task) int { return col.CompareString(a.Title, b.Title) }
	case SortByPriority:
		less = func(a, b *Task) int { return a.Priority.Rank() - b.Priority.Rank() }
	case SortByDueDate:
		less = func(a, b *Task) int { return dueDateOrEpoch(a).Compare(dueDateOrEpoch(b)) }
	default:
		less = func(a, b *Task) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		c := less(tasks[i], tasks[j])
		if s.Order == SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func dueDateOrEpoch(t *Task) time.Time {
	if t.DueDate == nil {
		return time.Unix(0, 0).UTC()
	}
	return *t.DueDate
}
