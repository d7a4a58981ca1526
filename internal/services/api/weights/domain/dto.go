package domain

// RecordInput stores one weight measurement for an owned animal
type RecordInput struct {
	AnimalID   string  `json:"animal_id" validate:"required,min=1,max=120"`
	WeightKG   float64 `json:"weight_kg" validate:"required,gt=0,lte=5000" example:"42.5"`
	MeasuredAt string  `json:"measured_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Notes      string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// RecordResult carries the minted measurement id
type RecordResult struct {
	WeightID string `json:"weight_id"`
}

// HistoryInput selects an animal's weight history
type HistoryInput struct {
	AnimalID string `json:"animal_id" validate:"required,min=1,max=120"`
}

// WeightView is one history row, newest first
type WeightView struct {
	WeightID   string  `json:"weight_id"`
	AnimalID   string  `json:"animal_id"`
	WeightKG   float64 `json:"weight_kg"`
	MeasuredAt string  `json:"measured_at"`
	Notes      string  `json:"notes,omitempty"`
}
