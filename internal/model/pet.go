package model

import "time"

// Pet represents an animal listed for adoption.
type Pet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specie    string    `json:"specie"`
	BirthDate string    `json:"birth_date"`
	Adopted   bool      `json:"adopted"`
	Owner     string    `json:"owner"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PetRequest represents a pet create or update request.
type PetRequest struct {
	Name      string `json:"name"`
	Specie    string `json:"specie"`
	BirthDate string `json:"birth_date"`
	Image     string `json:"image"`
}

// Adoption links an adopting user to a pet.
type Adoption struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Pet       string    `json:"pet"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
