package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

// PostgresStore implements Store on the game_logs and team_stats tables.
// The pool is owned by the caller.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// PlayerGames implements GameLogSource, most recent game first
func (s *PostgresStore) PlayerGames(ctx context.Context, player string) ([]models.GameRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, player_name, game_date, opponent,
		        pts, ast, trb, three_p, stl, blk, tov, mp
		 FROM game_logs
		 WHERE LOWER(player_name) = $1
		 ORDER BY game_date DESC`, PlayerKey(player))
	if err != nil {
		return nil, fmt.Errorf("query game logs for %s: %w", player, err)
	}
	defer rows.Close()

	var games []models.GameRecord
	for rows.Next() {
		var g models.GameRecord
		if err := rows.Scan(&g.ID, &g.Player, &g.Date, &g.Opponent,
			&g.Points, &g.Assists, &g.Rebounds, &g.ThreePointers,
			&g.Steals, &g.Blocks, &g.Turnovers, &g.Minutes); err != nil {
			return nil, fmt.Errorf("scan game log: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// AppendGames implements GameLogWriter. Records already stored are skipped.
func (s *PostgresStore) AppendGames(ctx context.Context, records []models.GameRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, g := range records {
		if g.ID == uuid.Nil {
			g.ID = uuid.New()
		}
		batch.Queue(
			`INSERT INTO game_logs (id, player_name, game_date, opponent,
			                        pts, ast, trb, three_p, stl, blk, tov, mp)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 ON CONFLICT (id) DO NOTHING`,
			g.ID, g.Player, g.Date, g.Opponent,
			g.Points, g.Assists, g.Rebounds, g.ThreePointers,
			g.Steals, g.Blocks, g.Turnovers, g.Minutes,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := range records {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert game log %d: %w", i, err)
		}
	}
	return nil
}

// TeamStats loads the team reference table
func (s *PostgresStore) TeamStats(ctx context.Context) ([]models.TeamStats, error) {
	rows, err := s.pool.Query(ctx, `SELECT code, def_rating, pace FROM team_stats`)
	if err != nil {
		return nil, fmt.Errorf("query team stats: %w", err)
	}
	defer rows.Close()

	var teams []models.TeamStats
	for rows.Next() {
		var ts models.TeamStats
		if err := rows.Scan(&ts.Code, &ts.DefRating, &ts.Pace); err != nil {
			return nil, fmt.Errorf("scan team stats: %w", err)
		}
		teams = append(teams, ts)
	}
	return teams, rows.Err()
}

// Ping checks the database connection
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
