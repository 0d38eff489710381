package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDownlineDepthAndOrdering(t *testing.T) {
	users := newFakeUserRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// C referred B, B referred A
	users.addUser("C", "", base)
	users.addUser("B", "C", base.Add(time.Hour))
	users.addUser("A", "B", base.Add(2*time.Hour))

	uc := NewDefaultReferralUsecase(users, &fakePackageRepo{}, 10)

	members, err := uc.ResolveDownline(context.Background(), "C", 5)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "B", members[0].UserID)
	assert.Equal(t, 1, members[0].Depth)
	assert.Equal(t, "A", members[1].UserID)
	assert.Equal(t, 2, members[1].Depth)
}

func TestResolveDownlineExcludesRootAndHonorsBound(t *testing.T) {
	users := newFakeUserRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	users.addUser("root", "", base)
	prev := "root"
	for _, id := range []string{"d1", "d2", "d3", "d4"} {
		users.addUser(id, prev, base.Add(time.Hour))
		prev = id
	}

	uc := NewDefaultReferralUsecase(users, &fakePackageRepo{}, 10)

	members, err := uc.ResolveDownline(context.Background(), "root", 2)
	require.NoError(t, err)
	require.Len(t, members, 2)
	for _, member := range members {
		assert.NotEqual(t, "root", member.UserID)
		assert.LessOrEqual(t, member.Depth, 2)
	}
}

func TestResolveDownlineWarnsAtDepthBound(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	users := newFakeUserRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	users.addUser("root", "", base)
	users.addUser("a", "root", base.Add(time.Hour))
	users.addUser("b", "a", base.Add(2*time.Hour))

	uc := NewDefaultReferralUsecase(users, &fakePackageRepo{}, 10)

	members, err := uc.ResolveDownline(context.Background(), "root", 1)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Contains(t, buf.String(), "depth bound")
}

func TestResolveDownlineSiblingsOrderedByRegistration(t *testing.T) {
	users := newFakeUserRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	users.addUser("root", "", base)
	users.addUser("late", "root", base.Add(3*time.Hour))
	users.addUser("early", "root", base.Add(time.Hour))

	uc := NewDefaultReferralUsecase(users, &fakePackageRepo{}, 10)

	members, err := uc.ResolveDownline(context.Background(), "root", 1)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "early", members[0].UserID)
	assert.Equal(t, "late", members[1].UserID)
}

func TestResolveDownlineTerminatesOnCycle(t *testing.T) {
	users := newFakeUserRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// corrupted data: A and B refer each other
	users.addUser("A", "B", base)
	users.addUser("B", "A", base.Add(time.Hour))

	uc := NewDefaultReferralUsecase(users, &fakePackageRepo{}, 10)

	members, err := uc.ResolveDownline(context.Background(), "A", 10)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "B", members[0].UserID)
}

func TestTeamInvestmentAggregatesOnce(t *testing.T) {
	users := newFakeUserRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	users.addUser("root", "", base)
	users.addUser("B", "root", base.Add(time.Hour))
	users.addUser("A", "B", base.Add(2*time.Hour))

	packages := &fakePackageRepo{}
	packages.addPackage("p1", "B", 1000, domain.PackageActive)
	packages.addPackage("p2", "A", 500, domain.PackageExpired)
	packages.addPackage("p3", "root", 9999, domain.PackageActive) // root's own, excluded

	uc := NewDefaultReferralUsecase(users, packages, 10)

	total, err := uc.TeamInvestment(context.Background(), "root", 10)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, total)
	assert.Equal(t, 1, packages.sumCalls)
}

func TestTeamInvestmentEmptyDownline(t *testing.T) {
	users := newFakeUserRepo()
	users.addUser("loner", "", time.Now())
	packages := &fakePackageRepo{}

	uc := NewDefaultReferralUsecase(users, packages, 10)

	total, err := uc.TeamInvestment(context.Background(), "loner", 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, packages.sumCalls)
}

func TestLevelCountsEligibilityFilter(t *testing.T) {
	users := newFakeUserRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	users.addUser("root", "", base)
	users.addUser("v1", "root", base.Add(time.Hour))
	users.addUser("v2", "root", base.Add(2*time.Hour))
	users.addUser("deep", "v1", base.Add(3*time.Hour))
	users.users["v2"].Verified = false

	uc := NewDefaultReferralUsecase(users, &fakePackageRepo{}, 10)

	raw, err := uc.LevelCounts(context.Background(), "root", 10, false)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 2, 2: 1}, raw)

	active, err := uc.LevelCounts(context.Background(), "root", 10, true)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 1}, active)
}
