package domain

import (
	"context"
	"time"
)

type PackageStatus string

const (
	PackageActive    PackageStatus = "Active"
	PackageExpired   PackageStatus = "Expired"
	PackageCancelled PackageStatus = "Cancelled"
)

// Package is one investment. Status transitions are driven by the
// investment workflow; the yield distributor only ever reads Active ones.
type Package struct {
	ID        string
	UserID    string
	Amount    float64
	Status    PackageStatus
	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PackageRepository interface {
	CreatePackage(ctx context.Context, pkg *Package) error
	ListByUserID(ctx context.Context, userID string) ([]*Package, error)
	ListActive(ctx context.Context) ([]*Package, error)
	HasActivePackage(ctx context.Context, userID string) (bool, error)
	// SumAmountByUserIDs aggregates package amounts over all given users in
	// a single query, regardless of package status.
	SumAmountByUserIDs(ctx context.Context, userIDs []string) (float64, error)
}
