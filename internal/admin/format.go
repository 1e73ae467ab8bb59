package admin

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	dateFormat     = "02.01.2006"
	timeFormat     = "15:04"
	dateTimeFormat = dateFormat + " " + timeFormat
)

// PeriodFormat renders an outage window for table display. Same-day windows
// show the date only once.
func PeriodFormat(start, end time.Time) string {
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return fmt.Sprintf("%s - %s", start.Format(dateTimeFormat), end.Format(timeFormat))
	}
	return fmt.Sprintf("%s - %s", start.Format(dateTimeFormat), end.Format(dateTimeFormat))
}

// invisiblePattern matches Unicode format characters and the Hangul filler,
// which some Telegram profiles use to fake empty names.
var invisiblePattern = regexp.MustCompile(`[\p{Cf}\x{3164}]`)

// Sanitize strips invisible Unicode characters so profile names do not break
// table alignment. Empty results come back as "-".
func Sanitize(value string) string {
	if value == "" {
		return "-"
	}
	cleaned := strings.TrimSpace(invisiblePattern.ReplaceAllString(value, ""))
	if cleaned == "" {
		return "-"
	}
	return cleaned
}
