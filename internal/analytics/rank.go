package analytics

import (
	"salespulse/internal/errors"
)

// Insight names the best- and worst-performing segment by percent change.
type Insight struct {
	Best  ComparisonRow `json:"best"`
	Worst ComparisonRow `json:"worst"`
}

// Rank finds the rows with the maximum and minimum percent change. Ties
// keep the earliest row, so the result is deterministic for a given row
// order. A single row is both best and worst.
func Rank(rows []ComparisonRow) (Insight, error) {
	if len(rows) == 0 {
		return Insight{}, errors.NewEmptyInputError("no comparison rows to rank")
	}

	best, worst := rows[0], rows[0]
	for _, row := range rows[1:] {
		if row.ChangePercent > best.ChangePercent {
			best = row
		}
		if row.ChangePercent < worst.ChangePercent {
			worst = row
		}
	}
	return Insight{Best: best, Worst: worst}, nil
}
