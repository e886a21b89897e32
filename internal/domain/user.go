// Package domain holds the core types of the reading tracker.
package domain

import "time"

// User is the single account that owns the reading list.
// It is created by provisioning and never changed through the API.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
