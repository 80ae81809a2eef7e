package postgres

import "time"

type playerGameweekStatTableModel struct {
	PlayerID               string    `db:"player_id"`
	Gameweek               int       `db:"gameweek"`
	FixtureID              string    `db:"fixture_id"`
	Minutes                int       `db:"minutes"`
	GoalsScored            int       `db:"goals_scored"`
	Assists                int       `db:"assists"`
	CleanSheets            int       `db:"clean_sheets"`
	GoalsConceded          int       `db:"goals_conceded"`
	OwnGoals               int       `db:"own_goals"`
	PenaltiesSaved         int       `db:"penalties_saved"`
	PenaltiesMissed        int       `db:"penalties_missed"`
	YellowCards            int       `db:"yellow_cards"`
	RedCards               int       `db:"red_cards"`
	Saves                  int       `db:"saves"`
	Tackles                int       `db:"tackles"`
	Interceptions          int       `db:"interceptions"`
	Clearances             int       `db:"clearances"`
	Blocks                 int       `db:"blocks"`
	Recoveries             int       `db:"recoveries"`
	KeyPasses              int       `db:"key_passes"`
	BigChancesCreated      int       `db:"big_chances_created"`
	SuccessfulDribbles     int       `db:"successful_dribbles"`
	Fouls                  int       `db:"fouls"`
	Offsides               int       `db:"offsides"`
	ErrorsLeadingToGoal    int       `db:"errors_leading_to_goal"`
	ErrorsLeadingToAttempt int       `db:"errors_leading_to_attempt"`
	BPS                    int       `db:"bps"`
	Bonus                  int       `db:"bonus"`
	TotalPoints            int       `db:"total_points"`
	UpdatedAt              time.Time `db:"updated_at"`
}
