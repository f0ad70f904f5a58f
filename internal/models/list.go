package models

// The helpers below maintain a client-side copy of the guest list. They never
// modify their input slice.

// AppendGuest returns guests with g added at the end.
func AppendGuest(guests []Guest, g Guest) []Guest {
	out := make([]Guest, 0, len(guests)+1)
	out = append(out, guests...)
	return append(out, g)
}

// ReplaceGuest returns guests with the entry matching g.ID swapped for g.
// Entries keep their positions; an unknown id leaves the list as it was.
func ReplaceGuest(guests []Guest, g Guest) []Guest {
	out := make([]Guest, len(guests))
	for i, existing := range guests {
		if existing.ID == g.ID {
			out[i] = g
			continue
		}
		out[i] = existing
	}
	return out
}

// RemoveGuest returns guests without the entry whose id matches.
func RemoveGuest(guests []Guest, id string) []Guest {
	out := make([]Guest, 0, len(guests))
	for _, g := range guests {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return out
}

// FindGuest looks up a guest by id.
func FindGuest(guests []Guest, id string) (Guest, bool) {
	for _, g := range guests {
		if g.ID == id {
			return g, true
		}
	}
	return Guest{}, false
}
