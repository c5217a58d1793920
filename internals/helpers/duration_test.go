package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDurationHM(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0h 0m"},
		{-5 * time.Minute, "0h 0m"},
		{30 * time.Second, "0h 0m"},
		{90 * time.Minute, "1h 30m"},
		{3*time.Hour + 25*time.Minute, "3h 25m"},
		{26 * time.Hour, "26h 0m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDurationHM(tc.in), "input %s", tc.in)
	}
}

func TestFormatHourLabel(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "12 AM"},
		{1, "1 AM"},
		{9, "9 AM"},
		{11, "11 AM"},
		{12, "12 PM"},
		{13, "1 PM"},
		{17, "5 PM"},
		{23, "11 PM"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatHourLabel(tc.hour), "hour %d", tc.hour)
	}
}

func TestFormatDurationClock(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDurationClock(0))
	assert.Equal(t, "01:02:03", FormatDurationClock(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "00:00:00", FormatDurationClock(-time.Minute))
}
