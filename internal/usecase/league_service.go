package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-points/internal/domain/league"
	idgen "github.com/riskibarqy/fantasy-points/internal/platform/id"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
)

const (
	inviteCodeAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteCodeLength      = 8
	inviteCodeMaxAttempts = 5
	defaultLeagueCapacity = 50
)

type CreateLeagueInput struct {
	Name        string
	Type        league.Type
	IsPrivate   bool
	AdminUserID string
	Capacity    int
}

type LeagueService struct {
	leagueRepo league.Repository
	idGen      idgen.Generator
	clock      clockwork.Clock
	logger     *logging.Logger
}

func NewLeagueService(leagueRepo league.Repository, idGen idgen.Generator, clock clockwork.Clock, logger *logging.Logger) *LeagueService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{
		leagueRepo: leagueRepo,
		idGen:      idGen,
		clock:      clock,
		logger:     logger,
	}
}

// CreateLeague creates a league with a fresh invite code; the admin joins it immediately.
func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.AdminUserID = strings.TrimSpace(input.AdminUserID)
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if input.AdminUserID == "" {
		return league.League{}, fmt.Errorf("%w: admin user id is required", ErrInvalidInput)
	}
	if input.Type == "" {
		input.Type = league.TypeClassic
	}
	if input.Capacity == 0 {
		input.Capacity = defaultLeagueCapacity
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}
	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return league.League{}, err
	}

	now := s.clock.Now().UTC()
	item := league.League{
		ID:          leagueID,
		Name:        input.Name,
		Code:        code,
		Type:        input.Type,
		IsPrivate:   input.IsPrivate,
		AdminUserID: input.AdminUserID,
		Capacity:    input.Capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	admin := league.Membership{LeagueID: item.ID, UserID: item.AdminUserID, JoinedAt: now}
	if err := s.leagueRepo.Create(ctx, item, admin); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	s.logger.InfoContext(ctx, "league created",
		"league_id", item.ID,
		"code", item.Code,
		"admin_user_id", item.AdminUserID,
	)
	return item, nil
}

// JoinByCode adds the user to the league behind an invite code.
func (s *LeagueService) JoinByCode(ctx context.Context, userID, code string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinByCode")
	defer span.End()

	userID = strings.TrimSpace(userID)
	code = strings.ToUpper(strings.TrimSpace(code))
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if code == "" {
		return league.League{}, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByCode(ctx, code)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by code: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league with code %s", ErrNotFound, code)
	}

	if err := s.addMember(ctx, item.ID, userID, s.clock.Now().UTC()); err != nil {
		return league.League{}, err
	}
	return item, nil
}

func (s *LeagueService) ListMembers(ctx context.Context, leagueID string) ([]league.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMembers")
	defer span.End()

	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("get league by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}
	return members, nil
}

func (s *LeagueService) addMember(ctx context.Context, leagueID, userID string, joinedAt time.Time) error {
	err := s.leagueRepo.AddMember(ctx, league.Membership{LeagueID: leagueID, UserID: userID, JoinedAt: joinedAt})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, league.ErrDuplicateMember):
		return fmt.Errorf("%w: user=%s league=%s", ErrAlreadyMember, userID, leagueID)
	case errors.Is(err, league.ErrCapacityReached):
		return fmt.Errorf("%w: league=%s", ErrLeagueFull, leagueID)
	default:
		return fmt.Errorf("add league member: %w", err)
	}
}

func (s *LeagueService) uniqueInviteCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < inviteCodeMaxAttempts; attempt++ {
		code, err := generateInviteCode(inviteCodeLength)
		if err != nil {
			return "", fmt.Errorf("generate invite code: %w", err)
		}
		_, exists, err := s.leagueRepo.GetByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check invite code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("generate invite code: no free code after %d attempts", inviteCodeMaxAttempts)
}

func generateInviteCode(length int) (string, error) {
	if length < 6 {
		length = 6
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes for invite code: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(out), nil
}
