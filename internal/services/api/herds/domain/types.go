// Package domain holds types and contracts for the herd registry
package domain

import "time"

// Herd is a named, owner-scoped set of animal identifiers
type Herd struct {
	ID          string
	Owner       string
	Name        string
	Description string
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Delete outcomes: the same call archives first, purges second
const (
	DeleteOutcomeArchived = "archived"
	DeleteOutcomePurged   = "purged"
)

// Event describes a herd mutation for the activity feed
type Event struct {
	Owner    string
	Herd     string
	Action   string
	AnimalID string
	Detail   string
	At       time.Time
}

// Event actions recorded by the registry
const (
	ActionCreate  = "create"
	ActionAdd     = "add_member"
	ActionRemove  = "remove_member"
	ActionMove    = "move_member"
	ActionSplit   = "split_members"
	ActionMerge   = "merge_into"
	ActionArchive = "archive"
	ActionPurge   = "purge"
	ActionRestore = "restore"
)
