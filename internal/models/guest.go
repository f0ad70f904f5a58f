package models

import (
	"bytes"
	"fmt"
	"strings"
)

// Guest represents one invited party on the wedding guest list
type Guest struct {
	ID                                 string      `json:"id"`
	Name                               string      `json:"name"`
	Association                        Association `json:"association"`
	Family                             bool        `json:"family"`
	DietaryRestrictions                string      `json:"dietaryRestrictions,omitempty"`
	BringingGuest                      PlusOne     `json:"bringingGuest,omitempty"`
	AdditionalGuestName                string      `json:"additionalGuestName,omitempty"`
	AdditionalGuestDietaryRestrictions string      `json:"additionalGuestDietaryRestrictions,omitempty"`
}

// Association denotes which member of the couple invited a guest
type Association string

const (
	AssociationJames Association = "James"
	AssociationMolly Association = "Molly"
)

// Associations lists the valid associations in display order.
var Associations = []Association{AssociationMolly, AssociationJames}

// Valid reports whether a is one of the two couple members.
func (a Association) Valid() bool {
	return a == AssociationJames || a == AssociationMolly
}

// PlusOne is the tri-state answer to "is this guest bringing someone".
// The zero value is PlusOneUnknown and is omitted on the wire.
type PlusOne int

const (
	PlusOneUnknown PlusOne = iota
	PlusOneYes
	PlusOneNo
)

func (p PlusOne) String() string {
	switch p {
	case PlusOneYes:
		return "yes"
	case PlusOneNo:
		return "no"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes Yes/No as JSON booleans. Unknown encodes as null,
// but struct fields tagged omitempty drop it entirely.
func (p PlusOne) MarshalJSON() ([]byte, error) {
	switch p {
	case PlusOneYes:
		return []byte("true"), nil
	case PlusOneNo:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts true, false or null.
func (p *PlusOne) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*p = PlusOneYes
	case "false":
		*p = PlusOneNo
	case "null":
		*p = PlusOneUnknown
	default:
		return fmt.Errorf("bringingGuest must be true, false or absent, got %s", data)
	}
	return nil
}

// PlusOneFromBool maps a known answer onto the tri-state.
func PlusOneFromBool(b bool) PlusOne {
	if b {
		return PlusOneYes
	}
	return PlusOneNo
}

// GuestInput is the caller-supplied payload for creating or replacing a guest.
// It never carries an id. Family is a pointer so a missing field can be told
// apart from false.
type GuestInput struct {
	Name                               string      `json:"name"`
	Association                        Association `json:"association"`
	Family                             *bool       `json:"family"`
	DietaryRestrictions                string      `json:"dietaryRestrictions,omitempty"`
	BringingGuest                      PlusOne     `json:"bringingGuest,omitempty"`
	AdditionalGuestName                string      `json:"additionalGuestName,omitempty"`
	AdditionalGuestDietaryRestrictions string      `json:"additionalGuestDietaryRestrictions,omitempty"`
}

// Validate applies the registry's structural rules: a name, one of the two
// associations and an explicit family flag.
func (in GuestInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if !in.Association.Valid() {
		return &ValidationError{Field: "association", Message: fmt.Sprintf("association must be %q or %q", AssociationJames, AssociationMolly)}
	}
	if in.Family == nil {
		return &ValidationError{Field: "family", Message: "family must be a boolean"}
	}
	return nil
}

// ToGuest builds the stored record for the given id. Call Validate first.
func (in GuestInput) ToGuest(id string) Guest {
	g := Guest{
		ID:                                 id,
		Name:                               in.Name,
		Association:                        in.Association,
		DietaryRestrictions:                in.DietaryRestrictions,
		BringingGuest:                      in.BringingGuest,
		AdditionalGuestName:                in.AdditionalGuestName,
		AdditionalGuestDietaryRestrictions: in.AdditionalGuestDietaryRestrictions,
	}
	if in.Family != nil {
		g.Family = *in.Family
	}
	return g
}

// Input returns the mutable fields of g, e.g. to prefill an edit form.
func (g Guest) Input() GuestInput {
	family := g.Family
	return GuestInput{
		Name:                               g.Name,
		Association:                        g.Association,
		Family:                             &family,
		DietaryRestrictions:                g.DietaryRestrictions,
		BringingGuest:                      g.BringingGuest,
		AdditionalGuestName:                g.AdditionalGuestName,
		AdditionalGuestDietaryRestrictions: g.AdditionalGuestDietaryRestrictions,
	}
}

// ValidationError reports a missing or malformed guest field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
