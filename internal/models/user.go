// Package models contains the domain records handled by the scheduling
// administration service: accounts, people registries, events and
// appointments. The structures are shared between the business layer and
// the storage layer.
package models

// User is an account able to sign into the administration area.
// The password hash never leaves the server: it is excluded from JSON
// and only read back for login verification.
type User struct {
	UID          string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Level        string `json:"level"`
	Status       string `json:"status"`
}

// Account levels. Registration defaults to LevelUser when none is given.
const (
	LevelAdmin = "admin"
	LevelUser  = "user"
)

// StatusActive is the default lifecycle status assigned at registration.
const StatusActive = "active"
