// Package calculator derives totals from a user's item list.
package calculator

import "github.com/ethan-wit/moving-items/internal/models"

// Progress summarizes how far a list is from its desired quantities.
type Progress struct {
	Items    int // rows on the list
	Complete int // rows whose quantity meets the desired quantity
	Desired  int // sum of desired quantities
	Held     int // sum of held quantities, each capped at its desired quantity
	Missing  int // sum of still-needed quantities
}

// CalculateProgress totals items. Surplus on one item does not offset a
// shortfall on another.
func CalculateProgress(items []*models.UserItem) Progress {
	var p Progress
	for _, ui := range items {
		if ui == nil {
			continue
		}
		p.Items++
		p.Desired += ui.DesiredQuantity

		missing := ui.Missing()
		p.Missing += missing
		p.Held += ui.DesiredQuantity - missing
		if missing == 0 {
			p.Complete++
		}
	}
	return p
}

// Percent returns the share of desired quantities already held, from 0 to 100.
// A list that wants nothing is complete.
func (p Progress) Percent() float64 {
	if p.Desired == 0 {
		return 100
	}
	return float64(p.Held) / float64(p.Desired) * 100
}
