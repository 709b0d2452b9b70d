package user

import "time"

// User is the implicit account attached to a browser session.
type User struct {
	ID      string    `json:"id" db:"id"`
	Created time.Time `json:"created" db:"created"`
}
