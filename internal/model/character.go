package model

// Character is a person in a writer's notebook.
type Character struct {
	ID          int64  `json:"id" db:"character_id"`
	UserID      int64  `json:"user_id" db:"user_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Backstory   string `json:"backstory" db:"backstory"`
}

// CharacterRequest is the editable part of a character.
type CharacterRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Backstory   string `json:"backstory"`
}
