package notifier

import (
	"context"
	"strings"
	"time"
)

// Record is one raw outage row as returned by the provider, before domain
// validation. Invalid records are dropped during normalization.
type Record struct {
	ID         int
	Start      time.Time
	End        time.Time
	City       string
	StreetID   int
	StreetName string
	Buildings  []string
	Comment    string
}

// Notification carries everything the transport needs to format and deliver
// one outage message.
type Notification struct {
	ChatID     int64
	City       string
	StreetName string
	Buildings  []string
	Start      time.Time
	End        time.Time
	Comment    string
}

// Source fetches raw outage records from the remote schedule API.
type Source interface {
	FetchOutages(ctx context.Context) ([]Record, error)
}

// Sender delivers one formatted notification. Delivery failures are reported
// as *SendError so the run loop can tell blocked recipients from transient
// trouble.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// SendError is a delivery failure for a specific recipient.
type SendError struct {
	ChatID  int64
	Code    int
	Message string
}

func (e *SendError) Error() string {
	return e.Message
}

// Blocked reports whether the recipient is permanently unreachable: the
// transport answered 403 or named the failure "forbidden".
func (e *SendError) Blocked() bool {
	return e.Code == 403 || strings.Contains(strings.ToLower(e.Message), "forbidden")
}
