// Package domain holds the animals module types and ports
package domain

import "time"

// Animal is one registered animal; its ID is the opaque identifier
// herd membership stores
type Animal struct {
	ID        string
	Owner     string
	Tag       string
	Name      string
	Species   string
	Breed     string
	Sex       string
	BirthDate *time.Time
	Notes     string
	CreatedAt time.Time
}
