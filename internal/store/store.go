// Package store provides read access to historical game records. PostgreSQL
// is the source of truth, Redis a read-through cache, and the in-memory
// store serves tests and Kafka-fed development setups.
package store

import (
	"context"
	"strings"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

//go:generate mockgen -source=store.go -destination=../mocks/mock_store.go -package=mocks

// GameLogSource returns a player's game records. Player names match
// case-insensitively; an unknown player yields an empty slice, not an error.
type GameLogSource interface {
	PlayerGames(ctx context.Context, player string) ([]models.GameRecord, error)
}

// GameLogWriter appends newly ingested game records
type GameLogWriter interface {
	AppendGames(ctx context.Context, records []models.GameRecord) error
}

// Store is a readable and writable record store
type Store interface {
	GameLogSource
	GameLogWriter
}

// PlayerKey normalizes a player name for case-insensitive matching
func PlayerKey(player string) string {
	return strings.ToLower(strings.TrimSpace(player))
}
