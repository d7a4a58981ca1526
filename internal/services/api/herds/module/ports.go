package module

import (
	"context"

	herdsdom "herdbook/internal/services/api/herds/domain"
	herdssvc "herdbook/internal/services/api/herds/service"
)

// Ports are the collaborators a caller may inject into the module
type Ports struct {
	// Events receives mutation events, usually the activity module's recorder
	Events herdsdom.EventSink
}

// Ports returns the module's exported port set
func (m *Module) Ports() any { return m.ports }

// adaptHerdsPort adapts the herds service to the domain port interface
type adaptHerdsPort struct{ svc herdssvc.Service }

// ViewMembers implements the read side other modules care about
func (a adaptHerdsPort) ViewMembers(ctx context.Context, owner, name string) ([]string, error) {
	return a.svc.ViewMembers(ctx, owner, name)
}
