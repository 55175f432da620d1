// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"fmt"

	"github.com/DrewRevelate/revelate-website-sub000/models"
)

// GetTally counts votes per option by walking the response-option joins.
// Every option of the poll appears in the result in display order, including
// options with zero votes. Counts are recomputed from the durable store on
// every call; nothing is cached.
func (s *Store) GetTally(ctx context.Context, pollID string) ([]models.OptionCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.label, o.display_order, COUNT(r.id)
		FROM poll_option o
		LEFT JOIN poll_response_option ro ON ro.option_id = o.id
		LEFT JOIN poll_response r ON r.id = ro.response_id AND r.poll_id = $1
		WHERE o.poll_id = $1
		GROUP BY o.id, o.label, o.display_order
		ORDER BY o.display_order
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query tally: %w", err)
	}
	defer rows.Close()

	tally := []models.OptionCount{}
	for rows.Next() {
		var entry models.OptionCount
		if err := rows.Scan(&entry.OptionID, &entry.Label, &entry.DisplayOrder, &entry.Votes); err != nil {
			return nil, fmt.Errorf("scan tally entry: %w", err)
		}
		tally = append(tally, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tally: %w", err)
	}

	return tally, nil
}
