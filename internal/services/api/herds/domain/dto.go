package domain

// CreateInput names a new herd
type CreateInput struct {
	Name        string `json:"name" validate:"required,min=1,max=120" example:"Spring Lambs"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000" example:"2026 spring drop"`
}

// CreateResult carries the minted herd id
type CreateResult struct {
	HerdID string `json:"herd_id"`
}

// MemberInput targets a single animal in a named herd
type MemberInput struct {
	Herd     string `json:"herd" validate:"required,min=1,max=120" example:"Spring Lambs"`
	AnimalID string `json:"animal_id" validate:"required,min=1,max=120" example:"6f1c7a42-9b1f-4a01-8a8e-2b9f2f6f1a11"`
}

// MoveInput moves one animal between two herds
type MoveInput struct {
	Source   string `json:"source" validate:"required,min=1,max=120" example:"Spring Lambs"`
	Target   string `json:"target" validate:"required,min=1,max=120" example:"Weaners"`
	AnimalID string `json:"animal_id" validate:"required,min=1,max=120"`
}

// SplitInput moves a batch of animals; the target is created when missing
type SplitInput struct {
	Source    string   `json:"source" validate:"required,min=1,max=120"`
	Target    string   `json:"target" validate:"required,min=1,max=120"`
	AnimalIDs []string `json:"animal_ids" validate:"required,min=1,dive,required"`
}

// MergeInput unions one herd into another and archives the donor
type MergeInput struct {
	Keep    string `json:"keep" validate:"required,min=1,max=120"`
	Archive string `json:"archive" validate:"required,min=1,max=120"`
}

// NameInput addresses a herd by name (delete, restore, view)
type NameInput struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// Ack is the success payload for mutations without a richer result
type Ack struct {
	OK bool `json:"ok"`
}

// DeleteResult reports which phase of the two-phase delete ran
type DeleteResult struct {
	Outcome string `json:"outcome" example:"archived"` // archived or purged
}

// MembersResult lists a herd's current members
type MembersResult struct {
	AnimalIDs []string `json:"animal_ids"`
}

// HerdSummary is one row of the listings
type HerdSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Archived    bool   `json:"archived"`
}
