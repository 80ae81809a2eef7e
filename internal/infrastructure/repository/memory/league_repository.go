package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-points/internal/domain/league"
)

type standingsKey struct {
	leagueID string
	gameweek int
}

type LeagueRepository struct {
	mu        sync.RWMutex
	items     map[string]league.League
	orders    []string
	members   map[string][]league.Membership
	standings map[standingsKey][]league.Standing
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))
	for _, l := range leagues {
		items[l.ID] = l
		orders = append(orders, l.ID)
	}

	return &LeagueRepository{
		items:     items,
		orders:    orders,
		members:   make(map[string][]league.Membership),
		standings: make(map[standingsKey][]league.Standing),
	}
}

// Create stores the league together with its admin membership.
func (r *LeagueRepository) Create(_ context.Context, item league.League, admin league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("league %s already exists", item.ID)
	}
	for _, existing := range r.items {
		if existing.Code == item.Code {
			return fmt.Errorf("league code %s already in use", item.Code)
		}
	}
	admin.LeagueID = item.ID
	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	r.members[item.ID] = []league.Membership{admin}
	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[leagueID]
	return item, ok, nil
}

func (r *LeagueRepository) GetByCode(_ context.Context, code string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Code == code {
			return item, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *LeagueRepository) AddMember(_ context.Context, membership league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[membership.LeagueID]
	if !ok {
		return fmt.Errorf("league %s not found", membership.LeagueID)
	}
	members := r.members[membership.LeagueID]
	for _, m := range members {
		if m.UserID == membership.UserID {
			return league.ErrDuplicateMember
		}
	}
	if item.Capacity > 0 && len(members) >= item.Capacity {
		return league.ErrCapacityReached
	}
	r.members[membership.LeagueID] = append(members, membership)
	return nil
}

func (r *LeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]league.Membership(nil), r.members[leagueID]...), nil
}

func (r *LeagueRepository) ReplaceStandings(_ context.Context, leagueID string, gameweek int, standings []league.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.standings[standingsKey{leagueID: leagueID, gameweek: gameweek}] = append([]league.Standing(nil), standings...)
	return nil
}

func (r *LeagueRepository) ListStandings(_ context.Context, leagueID string, gameweek int) ([]league.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]league.Standing(nil), r.standings[standingsKey{leagueID: leagueID, gameweek: gameweek}]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}
