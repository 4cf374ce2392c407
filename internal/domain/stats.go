package domain

import (
	"math"
	"time"
)

// RecentActivityWindow is the trailing period counted as recent activity.
const RecentActivityWindow = 7 * 24 * time.Hour

// TaskCounts are the raw aggregates for one owner's task set as produced by
// a single store query.
type TaskCounts struct {
	Total            int
	Todo             int
	InProgress       int
	Done             int
	Low              int
	Medium           int
	High             int
	HighPriorityOpen int
	Recent           int
}

// StatusBreakdown is the per-status task count.
type StatusBreakdown struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in-progress"`
	Done       int `json:"done"`
}

// PriorityBreakdown is the per-priority task count.
type PriorityBreakdown struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// TaskStats summarizes a user's task set.
type TaskStats struct {
	Created              int               `json:"created"`
	Completed            int               `json:"completed"`
	Active               int               `json:"active"`
	HighPriorityOpen     int               `json:"highPriorityOpen"`
	CompletionPercentage int               `json:"completionPercentage"`
	RecentActivity       int               `json:"recentActivity"`
	ByStatus             StatusBreakdown   `json:"byStatus"`
	ByPriority           PriorityBreakdown `json:"byPriority"`
}

// NewTaskStats derives the summary from raw counts.
func NewTaskStats(c TaskCounts) TaskStats {
	return TaskStats{
		Created:              c.Total,
		Completed:            c.Done,
		Active:               c.Todo + c.InProgress,
		HighPriorityOpen:     c.HighPriorityOpen,
		CompletionPercentage: CompletionPercentage(c.Done, c.Total),
		RecentActivity:       c.Recent,
		ByStatus: StatusBreakdown{
			Todo:       c.Todo,
			InProgress: c.InProgress,
			Done:       c.Done,
		},
		ByPriority: PriorityBreakdown{
			Low:    c.Low,
			Medium: c.Medium,
			High:   c.High,
		},
	}
}

// CompletionPercentage returns round(completed/total*100), or 0 when total is 0.
func CompletionPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
