package domain

import "context"

// ServicePort defines the registry contract
// every operation is scoped to the verified owner
type ServicePort interface {
	Create(ctx context.Context, owner string, in CreateInput) (string, error)
	AddMember(ctx context.Context, owner, herd, animalID string) error
	RemoveMember(ctx context.Context, owner, herd, animalID string) error
	MoveMember(ctx context.Context, owner, source, target, animalID string) error
	SplitMembers(ctx context.Context, owner, source, target string, animalIDs []string) error
	MergeInto(ctx context.Context, owner, keep, archive string) error
	Delete(ctx context.Context, owner, name string) (string, error)
	Restore(ctx context.Context, owner, name string) error
	ViewMembers(ctx context.Context, owner, name string) ([]string, error)
	ListActive(ctx context.Context, owner string) ([]HerdSummary, error)
	ListArchived(ctx context.Context, owner string) ([]HerdSummary, error)
}

// EventSink receives mutation events, best effort
// implementations must never fail the calling mutation
type EventSink interface {
	Record(ctx context.Context, ev Event)
}
