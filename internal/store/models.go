package store

import (
	"database/sql"
	"time"

	"github.com/sl4wa/outages-bot/internal/domain"
)

// subscriptionRow mirrors one row of the subscriptions table. Outage columns
// are nullable as a group: either all set (user has been notified) or none.
type subscriptionRow struct {
	chatID        int64
	streetID      int
	streetName    string
	building      string
	city          string
	outageStart   sql.NullInt64
	outageEnd     sql.NullInt64
	outageComment sql.NullString
	createdAt     int64
}

func (r subscriptionRow) toUser() domain.User {
	u := domain.User{
		ChatID: r.chatID,
		Address: domain.UserAddress{
			StreetID:   r.streetID,
			StreetName: r.streetName,
			Building:   r.building,
			City:       r.city,
		},
	}
	if r.outageStart.Valid && r.outageEnd.Valid {
		u.OutageInfo = &domain.OutageInfo{
			Period: domain.Period{
				Start: time.Unix(r.outageStart.Int64, 0).UTC(),
				End:   time.Unix(r.outageEnd.Int64, 0).UTC(),
			},
			Description: domain.Description{Value: r.outageComment.String},
		}
	}
	return u
}

func outageColumns(info *domain.OutageInfo) (start, end sql.NullInt64, comment sql.NullString) {
	if info == nil {
		return sql.NullInt64{}, sql.NullInt64{}, sql.NullString{}
	}
	return sql.NullInt64{Int64: info.Period.Start.UTC().Unix(), Valid: true},
		sql.NullInt64{Int64: info.Period.End.UTC().Unix(), Valid: true},
		sql.NullString{String: info.Description.Value, Valid: true}
}
