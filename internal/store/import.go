package store

import (
	"context"
	"fmt"

	"github.com/abhisek/learntwin/internal/attempt"
)

// ImportResult counts what Import did.
type ImportResult struct {
	Copied  int
	Skipped int
}

// Import copies records from src to dst in order. A record whose
// (user, question_id, timestamp) is already in dst is skipped, so running
// it again over the same source adds nothing. Correctness is normalized on
// the way through.
func Import(ctx context.Context, src, dst AttemptRepo) (ImportResult, error) {
	var res ImportResult

	existing, err := dst.LoadAll(ctx)
	if err != nil {
		return res, fmt.Errorf("load target: %w", err)
	}
	seen := make(map[attempt.Key]bool, len(existing))
	for _, r := range existing {
		seen[r.Key()] = true
	}

	records, err := src.LoadAll(ctx)
	if err != nil {
		return res, fmt.Errorf("load source: %w", err)
	}
	for i, r := range records {
		if seen[r.Key()] {
			res.Skipped++
			continue
		}
		r.Correct = r.Correct.Normalize()
		if err := dst.Append(ctx, r); err != nil {
			return res, fmt.Errorf("append record %d: %w", i, err)
		}
		seen[r.Key()] = true
		res.Copied++
	}
	return res, nil
}
