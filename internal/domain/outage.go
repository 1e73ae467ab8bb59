package domain

import (
	"fmt"
	"time"
)

// Period is the time window of an outage.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod constructs a Period, rejecting windows that end before they start.
func NewPeriod(start, end time.Time) (Period, error) {
	if start.After(end) {
		return Period{}, fmt.Errorf("%w: period start after end", ErrValidation)
	}
	return Period{Start: start, End: end}, nil
}

// Equals compares periods by Unix seconds. Provider timestamps carry no
// sub-second precision, and dropping it here keeps re-fetches of the same
// outage from looking like new ones.
func (p Period) Equals(other Period) bool {
	return p.Start.Unix() == other.Start.Unix() && p.End.Unix() == other.End.Unix()
}

// Description is the free-form provider comment attached to an outage.
type Description struct {
	Value string
}

// Equals is exact, case-sensitive string equality.
func (d Description) Equals(other Description) bool {
	return d.Value == other.Value
}

// Outage is a single power-interruption event as reported by the provider.
// Immutable once constructed.
type Outage struct {
	ID          int
	Period      Period
	Address     Address
	Description Description
}

// Affects reports whether this outage covers the given user address.
func (o Outage) Affects(ua UserAddress) bool {
	return o.Address.Covers(ua)
}

// Info returns the notified snapshot of this outage.
func (o Outage) Info() OutageInfo {
	return OutageInfo{Period: o.Period, Description: o.Description}
}

// OutageInfo is what a user was last told about: the time window and the
// comment. It deliberately excludes the provider id and the address, so
// "already notified" is judged on content rather than identity.
type OutageInfo struct {
	Period      Period
	Description Description
}

// Equals holds iff both the period and the description match.
func (i OutageInfo) Equals(other OutageInfo) bool {
	return i.Period.Equals(other.Period) && i.Description.Equals(other.Description)
}
