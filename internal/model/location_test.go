package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLocation(t *testing.T) {
	tests := []struct {
		name     string
		city     string
		state    string
		expected string
	}{
		{"both present", "Curitiba", "Paraná", "Curitiba, Paraná, Brasil"},
		{"missing state", "Curitiba", "", ""},
		{"missing city", "", "Paraná", ""},
		{"both missing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatLocation(tt.city, tt.state))
		})
	}
}

func TestAddressCityName(t *testing.T) {
	tests := []struct {
		name     string
		addr     Address
		expected string
	}{
		{"city wins", Address{City: "Curitiba", Town: "Pinhais"}, "Curitiba"},
		{"town fallback", Address{Town: "Pinhais", Village: "Vila"}, "Pinhais"},
		{"village fallback", Address{Village: "Vila", Municipality: "Colombo"}, "Vila"},
		{"municipality fallback", Address{Municipality: "Colombo"}, "Colombo"},
		{"nothing", Address{State: "Paraná"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.CityName())
		})
	}
}

func TestSuggestionLocation(t *testing.T) {
	tests := []struct {
		name     string
		addr     Address
		expected string
	}{
		{"city", Address{City: "Curitiba", State: "Paraná"}, "Curitiba, Paraná, Brasil"},
		{"town substitutes for city", Address{Town: "Pinhais", State: "Paraná"}, "Pinhais, Paraná, Brasil"},
		// village and municipality are good enough for reverse
		// geocoding but not for a typed suggestion
		{"village ignored", Address{Village: "Vila", State: "Paraná"}, ""},
		{"no state", Address{City: "Curitiba"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Suggestion{Address: tt.addr}
			assert.Equal(t, tt.expected, s.Location())
		})
	}
}
