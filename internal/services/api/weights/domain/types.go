// Package domain holds the weights module types and ports
package domain

import (
	"context"
	"time"
)

// Weight is one recorded measurement for an animal
type Weight struct {
	ID         string
	AnimalID   string
	WeightKG   float64
	MeasuredAt time.Time
	Notes      string
}

// AnimalResolver answers ownership questions, provided by the animals module
type AnimalResolver interface {
	Owns(ctx context.Context, owner, animalID string) (bool, error)
}

// ServicePort is what http handlers call
type ServicePort interface {
	Record(ctx context.Context, owner string, in RecordInput) (string, error)
	History(ctx context.Context, owner, animalID string) ([]WeightView, error)
}
