package navigator

import (
	"strings"

	"wedding-guestlist/internal/models"
)

// Advisory messages shown when a form is submitted incomplete.
const (
	MsgNameRequired              = "Please enter a name."
	MsgAssociationRequired       = "Please select an association"
	MsgFamilyRequired            = "Please say whether the guest is family or a friend."
	MsgDietaryRequired           = "Please enter dietary restrictions."
	MsgAdditionalNameRequired    = "Please enter the name of the additional guest."
	MsgAdditionalDietaryRequired = "Please enter the dietary restrictions of the additional guest."
)

// CheckForm applies the add/edit form policy, which is stricter than the
// registry: dietary restrictions are always required, and a confirmed
// plus-one needs a name and dietary restrictions of their own.
func CheckForm(in models.GuestInput) error {
	switch {
	case blank(in.Name):
		return advisory("name", MsgNameRequired)
	case !in.Association.Valid():
		return advisory("association", MsgAssociationRequired)
	case in.Family == nil:
		return advisory("family", MsgFamilyRequired)
	}

	if in.BringingGuest == models.PlusOneYes {
		if blank(in.AdditionalGuestName) {
			return advisory("additionalGuestName", MsgAdditionalNameRequired)
		}
		if blank(in.AdditionalGuestDietaryRestrictions) {
			return advisory("additionalGuestDietaryRestrictions", MsgAdditionalDietaryRequired)
		}
	}

	if blank(in.DietaryRestrictions) {
		return advisory("dietaryRestrictions", MsgDietaryRequired)
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func advisory(field, msg string) error {
	return &models.ValidationError{Field: field, Message: msg}
}
