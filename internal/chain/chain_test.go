package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.hilton.com/en/hotels/nycnh-hilton-new-york/", "hilton"},
		{"https://www.hamptoninn.com/property", "hilton"},
		{"https://www.hyatt.com/en-US/hotel/new-york", "hyatt"},
		{"https://www.marriott.com/hotels/travel/nycmq", "marriott"},
		{"https://www.sheraton.com/nyc", "marriott"},
		{"https://www.IHG.com/holidayinn/hotels", "ihg"},
		{"https://www.intercontinental.com/newyork", "ihg"},
		{"https://www.example.com/hotel", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, FromURL(tt.url))
		})
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Hilton Garden Inn Times Square", "hilton"},
		{"DoubleTree by Hilton Chelsea", "hilton"},
		{"Waldorf Astoria", "hilton"},
		{"Grand Hyatt New York", "hyatt"},
		{"Andaz 5th Avenue", "hyatt"},
		{"The Westin Grand Central", "marriott"},
		{"The Ritz-Carlton Central Park", "marriott"},
		{"Holiday Inn Express Midtown", "ihg"},
		{"Crowne Plaza Times Square", "ihg"},
		{"Independent Boutique Hotel", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromName(tt.name))
		})
	}
}

func TestVerify(t *testing.T) {
	v := Verify("https://www.hyatt.com/hotel", "hyatt")
	assert.True(t, v.Match)
	assert.Equal(t, "hyatt", v.Detected)

	v = Verify("https://www.hyatt.com/hotel", "hilton")
	assert.False(t, v.Match)

	// Empty expectation accepts whatever was detected.
	v = Verify("https://www.example.com/hotel", "")
	assert.True(t, v.Match)
	assert.Empty(t, v.Detected)
}
