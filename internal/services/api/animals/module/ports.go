package module

import (
	"context"

	animalssvc "herdbook/internal/services/api/animals/service"
)

// Ports returns the module's exported port set
func (m *Module) Ports() any { return m.ports }

// adaptAnimalsPort exposes ownership checks to sibling modules
type adaptAnimalsPort struct{ svc animalssvc.Service }

// Owns reports whether animalID is registered under owner
func (a adaptAnimalsPort) Owns(ctx context.Context, owner, animalID string) (bool, error) {
	return a.svc.Owns(ctx, owner, animalID)
}
