package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Café", "Cafe"},
		{"São Paulo", "Sao Paulo"},
		{"Zürich", "Zurich"},
		{"Hôtel Montréal", "Hotel Montreal"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveAccents(tt.in))
		})
	}
}

func TestNormalizeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"New York", "newyork"},
		{"  St. Louis  ", "stlouis"},
		{"Côte d'Azur", "cotedazur"},
		{"123 Main St.", "123mainst"},
		{"---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeComponent(tt.in))
		})
	}
}

func TestCombined(t *testing.T) {
	got := Combined("US", "NY", "New York", "The Grand Hôtel", "123 Main St")
	assert.Equal(t, "us-ny-newyork-thegrandhotel-123mainst", got)
}

func TestCombinedSkipsEmptyComponents(t *testing.T) {
	got := Combined("", "CA", "San José", "Hotel Café", "456 Elm Ave")
	assert.Equal(t, "ca-sanjose-hotelcafe-456elmave", got)
}

func TestCombinedRequiresStateAndAddress(t *testing.T) {
	assert.Empty(t, Combined("US", "", "Chicago", "Palmer House", "17 E Monroe"))
	assert.Empty(t, Combined("US", "IL", "Chicago", "Palmer House", "  "))
}
