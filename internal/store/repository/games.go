package repository

import (
	"context"
	"fmt"

	"github.com/Haynesmodel/DarlingDraft/internal/history"
	"github.com/Haynesmodel/DarlingDraft/internal/store"
)

const insertGame = `
	INSERT INTO h2h_games (
		season, week, game_date, team_a, team_b, score_a, score_b,
		round, game_type, team_low, team_high
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (season, week, team_low, team_high) DO NOTHING
`

// GameRepository mirrors game records into Postgres
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// UpsertGames inserts games in one transaction, skipping any whose key is
// already present. It returns the number of rows actually inserted.
func (r *GameRepository) UpsertGames(ctx context.Context, games []history.GameRecord) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertGame)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, g := range games {
		key, ok := g.Key()
		if !ok {
			continue
		}

		res, err := stmt.ExecContext(ctx,
			g.Season, key.Week, g.Date, g.TeamA, g.TeamB, g.ScoreA, g.ScoreB,
			g.Round, g.Type, key.Low, key.High,
		)
		if err != nil {
			return 0, fmt.Errorf("insert %d week %d %s vs %s: %w", g.Season, key.Week, g.TeamA, g.TeamB, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return inserted, nil
}

// ListSeason returns a season's mirrored games ordered by date, week, teams
func (r *GameRepository) ListSeason(ctx context.Context, season int) ([]history.GameRecord, error) {
	query := `
		SELECT season, week, to_char(game_date, 'YYYY-MM-DD'), team_a, team_b,
			score_a, score_b, round, game_type
		FROM h2h_games
		WHERE season = $1
		ORDER BY game_date, week, team_a, team_b
	`

	rows, err := r.db.DB().QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []history.GameRecord
	for rows.Next() {
		var (
			s, week            int
			date, teamA, teamB string
			scoreA, scoreB     float64
			round, gameType    string
		)
		if err := rows.Scan(&s, &week, &date, &teamA, &teamB, &scoreA, &scoreB, &round, &gameType); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}

		g := history.NewRegularGame(s, week, date, teamA, teamB, scoreA, scoreB)
		g.Round = round
		g.Type = gameType
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating games: %w", err)
	}

	return games, nil
}
