package dto

import "time"

// AreaRequest payload for create and rename.
type AreaRequest struct {
	Name string `json:"name"`
}

// AreaResponse representation.
type AreaResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
