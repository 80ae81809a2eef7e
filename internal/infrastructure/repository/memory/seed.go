package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/league"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerstats"
)

const (
	SeedLeagueID  = "demo-league"
	SeedFixtureID = "gw1-ars-liv"
)

var (
	seedClubs  = []string{"ars", "liv"}
	seedUsers  = []string{"demo-user-1", "demo-user-2"}
	seedLayout = []struct {
		position player.Position
		count    int
	}{
		{position: player.PositionGoalkeeper, count: 2},
		{position: player.PositionDefender, count: 5},
		{position: player.PositionMidfielder, count: 5},
		{position: player.PositionForward, count: 3},
	}
	seedKickoff = time.Date(2025, time.August, 15, 18, 0, 0, 0, time.UTC)
)

// SeedPlayers returns 15 players per club: 2 GK, 5 DEF, 5 MID, 3 FWD.
func SeedPlayers() []player.Player {
	out := make([]player.Player, 0, len(seedClubs)*fantasy.SquadSize)
	for _, club := range seedClubs {
		for _, slot := range seedLayout {
			for i := 1; i <= slot.count; i++ {
				out = append(out, player.Player{
					ID:       seedPlayerID(club, slot.position, i),
					TeamID:   club,
					Name:     fmt.Sprintf("%s %s %d", club, slot.position, i),
					Position: slot.position,
					Price:    int64(45 + 5*i),
				})
			}
		}
	}
	return out
}

func SeedGameweeks() []gameweek.Gameweek {
	finishedAt := seedKickoff.Add(4 * 24 * time.Hour)
	return []gameweek.Gameweek{
		{Number: 1, Name: "Gameweek 1", DeadlineAt: seedKickoff.Add(-90 * time.Minute), Status: gameweek.StatusFinished, FinishedAt: &finishedAt},
		{Number: 2, Name: "Gameweek 2", DeadlineAt: seedKickoff.Add(7*24*time.Hour - 90*time.Minute), Status: gameweek.StatusLive},
		{Number: 3, Name: "Gameweek 3", DeadlineAt: seedKickoff.Add(14*24*time.Hour - 90*time.Minute), Status: gameweek.StatusUpcoming},
	}
}

// SeedSquads gives each demo user a 4-4-2 of one club's players for gameweeks 1 and 2.
func SeedSquads() []fantasy.Squad {
	out := make([]fantasy.Squad, 0, len(seedUsers)*2)
	for i, userID := range seedUsers {
		club := seedClubs[i]
		picks := []fantasy.SquadPick{
			seedPick(club, player.PositionGoalkeeper, 1),
			seedPick(club, player.PositionDefender, 1),
			seedPick(club, player.PositionDefender, 2),
			seedPick(club, player.PositionDefender, 3),
			seedPick(club, player.PositionDefender, 4),
			seedPick(club, player.PositionMidfielder, 1),
			seedPick(club, player.PositionMidfielder, 2),
			seedPick(club, player.PositionMidfielder, 3),
			seedPick(club, player.PositionMidfielder, 4),
			seedPick(club, player.PositionForward, 1),
			seedPick(club, player.PositionForward, 2),
			seedPick(club, player.PositionGoalkeeper, 2),
			seedPick(club, player.PositionDefender, 5),
			seedPick(club, player.PositionMidfielder, 5),
			seedPick(club, player.PositionForward, 3),
		}
		for gw := 1; gw <= 2; gw++ {
			squad := fantasy.Squad{
				ID:            fmt.Sprintf("squad-%s-gw%d", userID, gw),
				UserID:        userID,
				Gameweek:      gw,
				Picks:         append([]fantasy.SquadPick(nil), picks...),
				CaptainID:     seedPlayerID(club, player.PositionForward, 1),
				ViceCaptainID: seedPlayerID(club, player.PositionMidfielder, 1),
				Formation:     "4-4-2",
			}
			if i == 1 && gw == 2 {
				squad.Chip = fantasy.ChipTripleCaptain
			}
			out = append(out, squad)
		}
	}
	return out
}

// SeedStats returns gameweek 1 stats for one fixture, ars 2-1 liv. Both clubs' third
// forwards did not play.
func SeedStats() []playerstats.GameweekStat {
	out := make([]playerstats.GameweekStat, 0, len(seedClubs)*fantasy.SquadSize)
	for clubIdx, club := range seedClubs {
		conceded := 1
		if clubIdx == 1 {
			conceded = 2
		}
		for _, slot := range seedLayout {
			for i := 1; i <= slot.count; i++ {
				stat := playerstats.GameweekStat{
					PlayerID:  seedPlayerID(club, slot.position, i),
					Gameweek:  1,
					FixtureID: SeedFixtureID,
				}
				switch {
				case slot.position == player.PositionForward && i == 3:
				case i == slot.count && slot.count > 1:
					stat.Minutes = 25
				default:
					stat.Minutes = 90
					stat.GoalsConceded = conceded
					stat.Recoveries = 3 + i
					stat.KeyPasses = i % 3
				}
				out = append(out, stat)
			}
		}
	}

	applySeedEvent(out, seedPlayerID("ars", player.PositionForward, 1), func(s *playerstats.GameweekStat) {
		s.GoalsScored = 2
		s.BigChancesCreated = 1
	})
	applySeedEvent(out, seedPlayerID("ars", player.PositionMidfielder, 1), func(s *playerstats.GameweekStat) {
		s.Assists = 1
		s.YellowCards = 1
	})
	applySeedEvent(out, seedPlayerID("liv", player.PositionForward, 1), func(s *playerstats.GameweekStat) {
		s.GoalsScored = 1
	})
	applySeedEvent(out, seedPlayerID("liv", player.PositionGoalkeeper, 1), func(s *playerstats.GameweekStat) {
		s.Saves = 6
		s.PenaltiesSaved = 1
	})
	applySeedEvent(out, seedPlayerID("ars", player.PositionDefender, 1), func(s *playerstats.GameweekStat) {
		s.Tackles = 4
		s.Clearances = 7
		s.Blocks = 2
	})
	return out
}

func SeedLeagues() []league.League {
	return []league.League{{
		ID:          SeedLeagueID,
		Name:        "Demo League",
		Code:        "DEMO2025",
		Type:        league.TypeClassic,
		AdminUserID: seedUsers[0],
		Capacity:    50,
		CreatedAt:   seedKickoff.Add(-7 * 24 * time.Hour),
		UpdatedAt:   seedKickoff.Add(-7 * 24 * time.Hour),
	}}
}

func SeedMemberships() []league.Membership {
	out := make([]league.Membership, 0, len(seedUsers))
	for i, userID := range seedUsers {
		out = append(out, league.Membership{
			LeagueID: SeedLeagueID,
			UserID:   userID,
			JoinedAt: seedKickoff.Add(-7*24*time.Hour + time.Duration(i)*time.Hour),
		})
	}
	return out
}

func seedPlayerID(club string, position player.Position, n int) string {
	return fmt.Sprintf("%s-%s-%d", club, position, n)
}

func seedPick(club string, position player.Position, n int) fantasy.SquadPick {
	return fantasy.SquadPick{PlayerID: seedPlayerID(club, position, n), TeamID: club, Position: position}
}

func applySeedEvent(stats []playerstats.GameweekStat, playerID string, fn func(*playerstats.GameweekStat)) {
	for i := range stats {
		if stats[i].PlayerID == playerID {
			fn(&stats[i])
			return
		}
	}
}
