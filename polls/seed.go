// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/DrewRevelate/revelate-website-sub000/models"
)

// SeedPoll is one poll definition from the startup seed file.
type SeedPoll struct {
	PollID      string       `json:"poll_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Options     []SeedOption `json:"options"`
}

type SeedOption struct {
	OptionID string `json:"option_id"`
	Label    string `json:"label"`
}

// LoadSeedFile parses a JSON array of poll definitions.
func LoadSeedFile(path string) ([]SeedPoll, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seeds []SeedPoll
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return seeds, nil
}

// Seed ensures each poll exists. Re-running against an existing database is a
// no-op for polls already present; their option sets are left alone. New
// polls start active.
func (s *Store) Seed(ctx context.Context, seeds []SeedPoll) error {
	for _, seed := range seeds {
		if seed.PollID == "" || len(seed.Options) == 0 {
			return fmt.Errorf("seed poll %q: poll_id and options are required", seed.PollID)
		}
		def := models.PollDefinition{
			ID:          seed.PollID,
			Title:       seed.Title,
			Description: seed.Description,
			IsActive:    true,
		}
		options := make([]models.PollOption, 0, len(seed.Options))
		for _, opt := range seed.Options {
			options = append(options, models.PollOption{ID: opt.OptionID, Label: opt.Label})
		}
		if _, err := s.EnsureDefinition(ctx, def, options); err != nil {
			return fmt.Errorf("seed poll %q: %w", seed.PollID, err)
		}
	}
	return nil
}
