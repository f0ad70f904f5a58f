package navigator

import (
	"fmt"
	"io"

	"wedding-guestlist/internal/models"
	"wedding-guestlist/internal/summary"
)

// Labels maps an association to the display name of that member of the couple.
type Labels map[models.Association]string

// Name returns the display name for a, falling back to the association itself.
func (l Labels) Name(a models.Association) string {
	if name, ok := l[a]; ok && name != "" {
		return name
	}
	return string(a)
}

// PlusOneMark is the short list marker for a plus-one answer.
func PlusOneMark(p models.PlusOne) string {
	switch p {
	case models.PlusOneYes:
		return "+1"
	case models.PlusOneNo:
		return "0"
	default:
		return "+1?"
	}
}

func relation(g models.Guest) string {
	if g.Family {
		return "Family"
	}
	return "Friend"
}

// RenderList writes the list view: one line per guest followed by the
// headcount summary for each side of the couple.
func RenderList(w io.Writer, guests []models.Guest, labels Labels) error {
	ew := &errWriter{w: w}
	ew.printf("Guest List\n")
	if len(guests) == 0 {
		ew.printf("  (no guests yet)\n")
	}
	for _, g := range guests {
		ew.printf("  [%s] %s | %s of %s | %s\n", g.ID, g.Name, relation(g), labels.Name(g.Association), PlusOneMark(g.BringingGuest))
	}

	s := summary.Summarize(guests)
	ew.printf("\nSummary:\n")
	for _, a := range models.Associations {
		r := s.For(a)
		ew.printf("  %s's Guests: %s (Family: %d)\n", labels.Name(a), r.Headcount(), r.FamilyCount)
	}
	return ew.err
}

// RenderGuest writes the details view for one guest.
func RenderGuest(w io.Writer, g models.Guest, labels Labels) error {
	ew := &errWriter{w: w}
	ew.printf("Guest Details [%s]\n", g.ID)
	ew.printf("  Name: %s\n", g.Name)
	ew.printf("  Guest of: %s\n", labels.Name(g.Association))
	ew.printf("  Family: %t\n", g.Family)
	ew.printf("  Dietary Restrictions: %s\n", g.DietaryRestrictions)
	ew.printf("  Bringing a Guest: %s\n", g.BringingGuest)
	if g.BringingGuest == models.PlusOneYes {
		ew.printf("  Additional Guest Name: %s\n", g.AdditionalGuestName)
		ew.printf("  Additional Guest Dietary Restrictions: %s\n", g.AdditionalGuestDietaryRestrictions)
	}
	return ew.err
}

// errWriter keeps the first write error so rendering code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
