package domain

import "time"

// Area is a named category/location assignable to tickets.
type Area struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
