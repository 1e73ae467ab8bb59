package admin

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sl4wa/outages-bot/internal/domain"
	"github.com/sl4wa/outages-bot/internal/store"
	"github.com/sl4wa/outages-bot/internal/telegram"
)

// UserInfoProvider resolves a chat id to its Telegram profile.
// telegram.Sender implements this.
type UserInfoProvider interface {
	GetUserInfo(chatID int64) (telegram.UserInfo, error)
}

// ListUsers returns all subscribers sorted by outage start descending, with
// users that were never notified at the end.
func ListUsers(ctx context.Context, repo store.Repo) ([]domain.User, error) {
	users, err := repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		if a.OutageInfo == nil {
			return false
		}
		if b.OutageInfo == nil {
			return true
		}
		return b.OutageInfo.Period.Start.Before(a.OutageInfo.Period.Start)
	})

	return users, nil
}

// RenderUsers prints subscribers as a table, resolving each chat's Telegram
// profile. Profiles that cannot be resolved are logged and skipped.
func RenderUsers(w io.Writer, users []domain.User, provider UserInfoProvider, log *zap.Logger) error {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Chat ID\tUsername\tFirst Name\tLast Name\tStreet\tBuilding\tOutage\tComment")

	shown := 0
	for _, user := range users {
		info, err := provider.GetUserInfo(user.ChatID)
		if err != nil {
			log.Warn("failed to get chat info",
				zap.Int64("chat_id", user.ChatID),
				zap.Error(err))
			continue
		}

		username := "-"
		if info.Username != "" {
			username = "@" + info.Username
		}

		outageStr, commentStr := "-", "-"
		if user.OutageInfo != nil {
			outageStr = PeriodFormat(user.OutageInfo.Period.Start, user.OutageInfo.Period.End)
			if user.OutageInfo.Description.Value != "" {
				commentStr = user.OutageInfo.Description.Value
			}
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			info.ChatID,
			username,
			Sanitize(info.FirstName),
			Sanitize(info.LastName),
			user.Address.StreetName,
			user.Address.Building,
			outageStr,
			commentStr,
		)
		shown++
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal Users: %d\n", shown)
	return nil
}

type userExport struct {
	ChatID     int64  `yaml:"chat_id"`
	StreetID   int    `yaml:"street_id"`
	StreetName string `yaml:"street_name"`
	Building   string `yaml:"building"`
	City       string `yaml:"city"`
	StartDate  string `yaml:"start_date,omitempty"`
	EndDate    string `yaml:"end_date,omitempty"`
	Comment    string `yaml:"comment,omitempty"`
}

// ExportUsersYAML writes subscribers as a YAML document, for backups and
// migrations between deployments.
func ExportUsersYAML(w io.Writer, users []domain.User) error {
	out := make([]userExport, 0, len(users))
	for _, u := range users {
		e := userExport{
			ChatID:     u.ChatID,
			StreetID:   u.Address.StreetID,
			StreetName: u.Address.StreetName,
			Building:   u.Address.Building,
			City:       u.Address.City,
		}
		if u.OutageInfo != nil {
			e.StartDate = u.OutageInfo.Period.Start.Format(time.RFC3339)
			e.EndDate = u.OutageInfo.Period.End.Format(time.RFC3339)
			e.Comment = u.OutageInfo.Description.Value
		}
		out = append(out, e)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(out)
}
