package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestPlusOneWireShape(t *testing.T) {
	g := Guest{ID: "0", Name: "Bob Brown", Association: AssociationJames}

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "bringingGuest", "unknown plus-one must be omitted")

	g.BringingGuest = PlusOneNo
	data, err = json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bringingGuest":false`)

	var decoded Guest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","name":"A","association":"Molly","family":true,"bringingGuest":true}`), &decoded))
	assert.Equal(t, PlusOneYes, decoded.BringingGuest)

	decoded = Guest{BringingGuest: PlusOneYes}
	require.NoError(t, json.Unmarshal([]byte(`{"bringingGuest":null}`), &decoded))
	assert.Equal(t, PlusOneUnknown, decoded.BringingGuest)

	err = json.Unmarshal([]byte(`{"bringingGuest":"maybe"}`), &decoded)
	assert.Error(t, err)
}

func TestGuestInputValidate(t *testing.T) {
	valid := GuestInput{Name: "John Doe", Association: AssociationJames, Family: boolPtr(true)}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		edit  func(in *GuestInput)
		field string
	}{
		{"empty name", func(in *GuestInput) { in.Name = "" }, "name"},
		{"blank name", func(in *GuestInput) { in.Name = "   " }, "name"},
		{"missing association", func(in *GuestInput) { in.Association = "" }, "association"},
		{"unknown association", func(in *GuestInput) { in.Association = "Bob" }, "association"},
		{"missing family", func(in *GuestInput) { in.Family = nil }, "family"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.edit(&in)
			err := in.Validate()
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestFamilyFieldAbsentDecodesAsNil(t *testing.T) {
	var in GuestInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","association":"James"}`), &in))
	assert.Nil(t, in.Family)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","association":"James","family":false}`), &in))
	require.NotNil(t, in.Family)
	assert.False(t, *in.Family)
}

func TestInputRoundTripsThroughToGuest(t *testing.T) {
	g := Guest{
		ID:                                 "7",
		Name:                               "John Doe",
		Association:                        AssociationJames,
		Family:                             true,
		DietaryRestrictions:                "None",
		BringingGuest:                      PlusOneYes,
		AdditionalGuestName:                "Jane Doe",
		AdditionalGuestDietaryRestrictions: "Vegetarian",
	}
	assert.Equal(t, g, g.Input().ToGuest("7"))
}

func TestListHelpersDoNotMutateInput(t *testing.T) {
	guests := []Guest{
		{ID: "1", Name: "John Doe", Association: AssociationJames},
		{ID: "2", Name: "Alice Smith", Association: AssociationMolly},
	}

	added := AppendGuest(guests, Guest{ID: "3", Name: "Bob Brown"})
	assert.Len(t, added, 3)
	assert.Len(t, guests, 2)

	replaced := ReplaceGuest(guests, Guest{ID: "1", Name: "John Smith"})
	assert.Equal(t, "John Smith", replaced[0].Name)
	assert.Equal(t, "John Doe", guests[0].Name)
	assert.Equal(t, guests, ReplaceGuest(guests, Guest{ID: "missing"}))

	removed := RemoveGuest(guests, "1")
	assert.Equal(t, []Guest{guests[1]}, removed)
	assert.Equal(t, guests, RemoveGuest(guests, "missing"))

	found, ok := FindGuest(guests, "2")
	assert.True(t, ok)
	assert.Equal(t, "Alice Smith", found.Name)
	_, ok = FindGuest(guests, "9")
	assert.False(t, ok)
}
