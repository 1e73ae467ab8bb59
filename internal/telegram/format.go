package telegram

import (
	"fmt"
	"strings"

	"github.com/sl4wa/outages-bot/internal/notifier"
)

const periodFormat = "2006-01-02 15:04"

// FormatNotification renders one outage notification as a Telegram HTML
// message: city, street, bold time window, comment and affected buildings.
func FormatNotification(n notifier.Notification) string {
	return fmt.Sprintf(
		"Поточні відключення:\nМісто: %s\nВулиця: %s\n<b>%s – %s</b>\nКоментар: %s\nБудинки: %s",
		n.City,
		n.StreetName,
		n.Start.Format(periodFormat),
		n.End.Format(periodFormat),
		n.Comment,
		strings.Join(n.Buildings, ", "),
	)
}
