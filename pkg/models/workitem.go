package models

import "time"

// ItemType categorizes the kind of work an item represents.
type ItemType string

const (
	TypeFeature         ItemType = "feature"
	TypeBug             ItemType = "bug"
	TypeRefactor        ItemType = "refactor"
	TypeSecurity        ItemType = "security"
	TypeIntegrationTest ItemType = "integration_test"
	TypeDeployment      ItemType = "deployment"
	TypeCustom          ItemType = "custom"
)

// ValidItemTypes lists every accepted item type in display order.
var ValidItemTypes = []ItemType{
	TypeFeature,
	TypeBug,
	TypeRefactor,
	TypeSecurity,
	TypeIntegrationTest,
	TypeDeployment,
	TypeCustom,
}

// IsValid reports whether the item type is one of the closed set.
func (t ItemType) IsValid() bool {
	for _, v := range ValidItemTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ItemStatus represents the stored lifecycle state of a work item.
// "blocked" is intentionally absent: blockedness is derived from the
// dependency graph on read and never persisted.
type ItemStatus string

const (
	StatusNotStarted ItemStatus = "not_started"
	StatusInProgress ItemStatus = "in_progress"
	StatusCompleted  ItemStatus = "completed"
)

// ValidItemStatuses lists every accepted status in lifecycle order.
var ValidItemStatuses = []ItemStatus{
	StatusNotStarted,
	StatusInProgress,
	StatusCompleted,
}

// IsValid reports whether the status is one of the closed set.
func (s ItemStatus) IsValid() bool {
	for _, v := range ValidItemStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Priority represents the urgency level of a work item.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// ValidPriorities lists every accepted priority from highest to lowest.
var ValidPriorities = []Priority{
	PriorityCritical,
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

// IsValid reports whether the priority is one of the closed set.
func (p Priority) IsValid() bool {
	return p.Rank() >= 0
}

// Rank returns the priority's position in the ordering, 0 being the
// highest (critical). Unknown priorities rank -1.
func (p Priority) Rank() int {
	for i, v := range ValidPriorities {
		if p == v {
			return i
		}
	}
	return -1
}

// WorkItem represents a discrete unit of planned engineering work.
// The ID is assigned at creation and immutable afterwards.
type WorkItem struct {
	ID           string     `yaml:"id"`
	Type         ItemType   `yaml:"type"`
	Title        string     `yaml:"title"`
	Status       ItemStatus `yaml:"status"`
	Priority     Priority   `yaml:"priority"`
	Milestone    string     `yaml:"milestone,omitempty"`
	Dependencies []string   `yaml:"dependencies,omitempty"`
	Urgent       bool       `yaml:"urgent,omitempty"`
	SpecRef      string     `yaml:"spec_ref,omitempty"`
	Created      time.Time  `yaml:"created"`
	Updated      time.Time  `yaml:"updated"`
}

// DependsOn reports whether the item lists id as a direct dependency.
func (w *WorkItem) DependsOn(id string) bool {
	for _, dep := range w.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}

// Milestone groups work items for aggregate progress reporting.
// Progress is always computed from member statuses, never stored.
type Milestone struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Members []string `yaml:"members,omitempty"`
}

// MilestoneProgress is the computed completion state of a milestone.
type MilestoneProgress struct {
	MilestoneID string
	Total       int
	Completed   int
}

// Percent returns the completion percentage, 0 for an empty milestone.
func (p MilestoneProgress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total) * 100
}
