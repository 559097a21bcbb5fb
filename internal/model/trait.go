package model

// Trait is a free-form personality trait.
type Trait struct {
	ID     int64  `json:"id" db:"trait_id"`
	UserID int64  `json:"user_id" db:"user_id"`
	Name   string `json:"name" db:"name"`
}

// TraitRequest carries a trait name.
type TraitRequest struct {
	Name string `json:"name" binding:"required"`
}
