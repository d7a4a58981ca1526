// Package domain holds the activity feed types and ports
package domain

import "context"

// RecentInput selects a slice of the owner's event feed
type RecentInput struct {
	Herd  string `json:"herd,omitempty" validate:"omitempty,max=120"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
}

// EventView is one feed row, newest first
type EventView struct {
	Herd     string `json:"herd"`
	Action   string `json:"action"`
	AnimalID string `json:"animal_id,omitempty"`
	Detail   string `json:"detail,omitempty"`
	At       string `json:"at"`
}

// ServicePort is what http handlers call
type ServicePort interface {
	Recent(ctx context.Context, owner string, in RecentInput) ([]EventView, error)
}
