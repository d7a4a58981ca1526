package domain

// RegisterInput records a new animal under the caller's flock
type RegisterInput struct {
	Tag       string `json:"tag" validate:"required,min=1,max=64" example:"EID 982 000123456789"`
	Name      string `json:"name,omitempty" validate:"omitempty,max=120" example:"Clover"`
	Species   string `json:"species,omitempty" validate:"omitempty,max=60" example:"sheep"`
	Breed     string `json:"breed,omitempty" validate:"omitempty,max=60" example:"Romney"`
	Sex       string `json:"sex,omitempty" validate:"omitempty,oneof=female male castrate unknown"`
	BirthDate string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2026-08-14"`
	Notes     string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// RegisterResult carries the minted animal id
type RegisterResult struct {
	AnimalID string `json:"animal_id"`
}

// LookupInput finds an animal by its ear tag
type LookupInput struct {
	Tag string `json:"tag" validate:"required,min=1,max=64"`
}

// AnimalView is the external shape of a registered animal
type AnimalView struct {
	AnimalID  string `json:"animal_id"`
	Tag       string `json:"tag"`
	Name      string `json:"name,omitempty"`
	Species   string `json:"species,omitempty"`
	Breed     string `json:"breed,omitempty"`
	Sex       string `json:"sex,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}
