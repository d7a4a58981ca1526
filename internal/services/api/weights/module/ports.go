package module

import weightsdom "herdbook/internal/services/api/weights/domain"

// Ports are the collaborators a caller must inject into the module
type Ports struct {
	// Animals answers ownership checks, usually the animals module's port
	Animals weightsdom.AnimalResolver
}

// Ports returns the module's exported port set
func (m *Module) Ports() any { return m.ports }
