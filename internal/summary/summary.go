// Package summary projects a guest list onto per-association headcount ranges.
//
// A guest whose plus-one is still undecided may or may not bring someone, so
// the final headcount for each side of the couple is a range rather than a
// single number.
package summary

import (
	"fmt"

	"wedding-guestlist/internal/models"
)

// Range is the attendance bound for one association.
type Range struct {
	FamilyCount int `json:"familyCount"`
	MinGuests   int `json:"minGuests"`
	MaxGuests   int `json:"maxGuests"`
}

// Summary holds one Range per member of the couple.
type Summary struct {
	Molly Range `json:"molly"`
	James Range `json:"james"`
}

// For returns the range for association a.
func (s Summary) For(a models.Association) Range {
	if a == models.AssociationMolly {
		return s.Molly
	}
	return s.James
}

// Summarize computes the summary of guests. It does not retain or modify its input.
func Summarize(guests []models.Guest) Summary {
	var s Summary
	for _, g := range guests {
		switch g.Association {
		case models.AssociationMolly:
			s.Molly.add(g)
		case models.AssociationJames:
			s.James.add(g)
		}
	}
	return s
}

// add counts g itself toward both bounds, a confirmed plus-one toward both,
// and an undecided plus-one toward the maximum only.
func (r *Range) add(g models.Guest) {
	if g.Family {
		r.FamilyCount++
	}
	r.MinGuests++
	r.MaxGuests++
	switch g.BringingGuest {
	case models.PlusOneYes:
		r.MinGuests++
		r.MaxGuests++
	case models.PlusOneUnknown:
		r.MaxGuests++
	case models.PlusOneNo:
	}
}

// Exact reports whether the headcount is known precisely.
func (r Range) Exact() bool {
	return r.MinGuests == r.MaxGuests
}

// Headcount formats the range as "n" when exact and "min-max" otherwise.
func (r Range) Headcount() string {
	if r.Exact() {
		return fmt.Sprintf("%d", r.MinGuests)
	}
	return fmt.Sprintf("%d-%d", r.MinGuests, r.MaxGuests)
}
