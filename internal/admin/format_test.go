package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodFormatSameDay(t *testing.T) {
	start := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 16, 30, 0, 0, time.UTC)

	assert.Equal(t, "15.03.2024 08:00 - 16:30", PeriodFormat(start, end))
}

func TestPeriodFormatMultiDay(t *testing.T) {
	start := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 16, 0, 0, 0, time.UTC)

	assert.Equal(t, "15.03.2024 08:00 - 16.03.2024 16:00", PeriodFormat(start, end))
}

func TestPeriodFormatMidnightBoundary(t *testing.T) {
	start := time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, "15.03.2024 23:00 - 16.03.2024 01:00", PeriodFormat(start, end))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain ASCII", "Hello World", "Hello World"},
		{"zero-width joiner", "Hello‍World", "HelloWorld"},
		{"zero-width non-joiner", "Hello‌World", "HelloWorld"},
		{"soft hyphen", "Hello­World", "HelloWorld"},
		{"hangul filler", "HelloㅤWorld", "HelloWorld"},
		{"only invisible chars", "‍‌­", "-"},
		{"empty string", "", "-"},
		{"whitespace after stripping", "‍ ‌", "-"},
		{"cyrillic preserved", "Іван Петрович", "Іван Петрович"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}
