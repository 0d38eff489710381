package domain

import (
	"context"
	"time"
)

type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"
)

// User is a platform participant. Referrer points to exactly one other
// participant's UserID and is immutable after registration; roots carry
// an empty referrer.
type User struct {
	UserID    string
	FullName  string
	Referrer  string
	Verified  bool
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DownlineMember is one entry of a resolved referral downline.
// Depth 1 means a direct referral of the root.
type DownlineMember struct {
	UserID       string
	Referrer     string
	Depth        int
	RegisteredAt time.Time
	Verified     bool
	Status       UserStatus
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, userID string) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	// ListByReferrers returns all users whose referrer is one of the given
	// ids, ordered by registration time ascending.
	ListByReferrers(ctx context.Context, referrerIDs []string) ([]*User, error)
}
