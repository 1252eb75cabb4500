package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
)

// LoadSeedFile reads a JSON array of game records, as written by the
// game-log collector, for preloading a MemoryStore
func LoadSeedFile(path string) ([]models.GameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var records []models.GameRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return records, nil
}
