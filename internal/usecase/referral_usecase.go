package usecase

import (
	"context"
	"log/slog"
	"sort"

	"github.com/Danish0929x/eurobytebackend/internal/domain"
)

type ReferralUsecase interface {
	ResolveDownline(ctx context.Context, rootUserID string, maxDepth int) ([]domain.DownlineMember, error)
	TeamInvestment(ctx context.Context, rootUserID string, maxDepth int) (float64, error)
	LevelCounts(ctx context.Context, rootUserID string, maxDepth int, activeOnly bool) (map[int]int, error)
}

type DefaultReferralUsecase struct {
	UserRepo     domain.UserRepository
	PackageRepo  domain.PackageRepository
	DefaultDepth int
}

func NewDefaultReferralUsecase(userRepo domain.UserRepository, packageRepo domain.PackageRepository, defaultDepth int) *DefaultReferralUsecase {
	if defaultDepth <= 0 {
		defaultDepth = 10
	}
	return &DefaultReferralUsecase{
		UserRepo:     userRepo,
		PackageRepo:  packageRepo,
		DefaultDepth: defaultDepth,
	}
}

// ResolveDownline walks the referrer back-edges breadth-first. The root is
// depth 0 and excluded from the output. The visited set is consulted before
// every enqueue: the referrer relation is supposed to be a forest, but a
// corrupted cycle must terminate the walk, not hang it.
func (uc *DefaultReferralUsecase) ResolveDownline(ctx context.Context, rootUserID string, maxDepth int) ([]domain.DownlineMember, error) {
	if rootUserID == "" {
		return nil, domain.ErrValidation
	}
	if maxDepth <= 0 || maxDepth > uc.DefaultDepth {
		slog.Debug("downline depth clamped",
			"requested", maxDepth,
			"max_depth", uc.DefaultDepth)
		maxDepth = uc.DefaultDepth
	}

	visited := map[string]bool{rootUserID: true}
	frontier := []string{rootUserID}
	var members []domain.DownlineMember

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		users, err := uc.UserRepo.ListByReferrers(ctx, frontier)
		if err != nil {
			return nil, err
		}

		next := make([]string, 0, len(users))
		for _, user := range users {
			if visited[user.UserID] {
				slog.Warn("referral graph integrity: cycle detected",
					"user_id", user.UserID,
					"root", rootUserID,
					"depth", depth)
				continue
			}
			visited[user.UserID] = true
			members = append(members, domain.DownlineMember{
				UserID:       user.UserID,
				Referrer:     user.Referrer,
				Depth:        depth,
				RegisteredAt: user.CreatedAt,
				Verified:     user.Verified,
				Status:       user.Status,
			})
			next = append(next, user.UserID)
		}
		frontier = next
	}

	if len(frontier) > 0 {
		slog.Warn("referral graph integrity: traversal stopped at depth bound",
			"root", rootUserID,
			"max_depth", maxDepth,
			"frontier", len(frontier))
	}

	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Depth != members[j].Depth {
			return members[i].Depth < members[j].Depth
		}
		return members[i].RegisteredAt.Before(members[j].RegisteredAt)
	})

	return members, nil
}

// TeamInvestment sums package amounts over the whole downline in a single
// aggregate query, regardless of package status.
func (uc *DefaultReferralUsecase) TeamInvestment(ctx context.Context, rootUserID string, maxDepth int) (float64, error) {
	members, err := uc.ResolveDownline(ctx, rootUserID, maxDepth)
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, nil
	}

	userIDs := make([]string, len(members))
	for i, member := range members {
		userIDs[i] = member.UserID
	}

	return uc.PackageRepo.SumAmountByUserIDs(ctx, userIDs)
}

func (uc *DefaultReferralUsecase) LevelCounts(ctx context.Context, rootUserID string, maxDepth int, activeOnly bool) (map[int]int, error) {
	members, err := uc.ResolveDownline(ctx, rootUserID, maxDepth)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	for _, member := range members {
		if activeOnly && !(member.Verified && member.Status == domain.UserActive) {
			continue
		}
		counts[member.Depth]++
	}
	return counts, nil
}
