package domain

import "context"

// ServicePort is what http handlers and sibling modules call
type ServicePort interface {
	Register(ctx context.Context, owner string, in RegisterInput) (string, error)
	LookupByTag(ctx context.Context, owner, tag string) (AnimalView, error)
	List(ctx context.Context, owner string) ([]AnimalView, error)

	// Owns reports whether animalID is registered under owner
	Owns(ctx context.Context, owner, animalID string) (bool, error)
}
