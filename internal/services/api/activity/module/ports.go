package module

import herdsdom "herdbook/internal/services/api/herds/domain"

// Ports are the collaborators this module offers to siblings
type Ports struct {
	// Events is the herd mutation recorder, safe to call when the feed is off
	Events herdsdom.EventSink
}

// Ports returns the module's exported port set
func (m *Module) Ports() any { return m.ports }
