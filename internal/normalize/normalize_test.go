package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBool(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want bool
		ok   bool
	}{
		{"yes", "yes", true, true},
		{"Yes mixed case", "Yes", true, true},
		{"true word", "true", true, true},
		{"one", "1", true, true},
		{"t", "t", true, true},
		{"y", "y", true, true},
		{"no", "no", false, true},
		{"false word", "false", false, true},
		{"zero", "0", false, true},
		{"f", "f", false, true},
		{"n", "n", false, true},
		{"native bool", true, true, true},
		{"nil", nil, false, false},
		{"empty", "", false, false},
		{"garbage", "pets welcome", false, false},
		{"numeric two", "2", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Bool(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int64
		ok   bool
	}{
		{"count with unit", "2 pets", 2, true},
		{"weight with unit", "75 lbs", 75, true},
		{"first run wins", "2 pets, 50 lbs max", 2, true},
		{"negative", "-3", -3, true},
		{"native int", 7, 7, true},
		{"native float truncates", 7.9, 7, true},
		{"nil", nil, 0, false},
		{"no digits", "unlimited", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Int(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
		ok   bool
	}{
		{"currency symbol", "$50.00", 50.0, true},
		{"amount with words", "$25 per night", 25.0, true},
		{"bare decimal", "12.5", 12.5, true},
		{"native int", 30, 30.0, true},
		{"native float", 19.99, 19.99, true},
		{"nil", nil, 0, false},
		{"no number", "varies by season", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Float(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
		ok   bool
	}{
		{"per stay", "Per Stay", "per-stay", true},
		{"per night", "per night", "per-night", true},
		{"stay wins over night", "per night of stay", "per-stay", true},
		{"per day", "each day", "per-day", true},
		{"per week", "weekly", "per-week", true},
		{"one time", "one-time charge", "one-time", true},
		{"nil", nil, "", false},
		{"unknown", "monthly", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Interval(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
		ok   bool
	}{
		{"dollar symbol", "$", "usd", true},
		{"iso upper", "EUR", "eur", true},
		{"name", "pounds sterling", "gbp", true},
		{"embedded", "price in CAD", "cad", true},
		{"yen", "JPY", "jpy", true},
		{"nil", nil, "", false},
		{"unknown", "zł", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Currency(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
