package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOutage(t *testing.T, id, streetID int, buildings []string, comment string) Outage {
	t.Helper()
	p, err := NewPeriod(
		time.Date(2024, 11, 28, 6, 47, 0, 0, time.UTC),
		time.Date(2024, 11, 28, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	a, err := NewAddress(streetID, "Шевченка", buildings, "Львів")
	require.NoError(t, err)
	return Outage{ID: id, Period: p, Address: a, Description: Description{Value: comment}}
}

func makeUser(t *testing.T, streetID int, building string) User {
	t.Helper()
	addr, err := NewUserAddress(streetID, "Шевченка", building)
	require.NoError(t, err)
	return User{ChatID: 100, Address: addr}
}

func TestFindForNotification_FirstCoveringOutage(t *testing.T) {
	user := makeUser(t, 12783, "271")
	outages := []Outage{
		makeOutage(t, 1, 11111, []string{"271"}, "other street"),
		makeOutage(t, 2, 12783, []string{"271", "273"}, "Planned maintenance"),
	}

	got, ok := FindForNotification(user, outages)
	require.True(t, ok)
	assert.Equal(t, 2, got.ID)
}

func TestFindForNotification_NoCoverage(t *testing.T) {
	user := makeUser(t, 99999, "1")
	outages := []Outage{makeOutage(t, 1, 12783, []string{"271"}, "Planned maintenance")}

	_, ok := FindForNotification(user, outages)
	assert.False(t, ok)
}

func TestFindForNotification_EmptyList(t *testing.T) {
	user := makeUser(t, 12783, "271")
	_, ok := FindForNotification(user, nil)
	assert.False(t, ok)
}

func TestFindForNotification_FirstMatchWins(t *testing.T) {
	user := makeUser(t, 12783, "271")
	outages := []Outage{
		makeOutage(t, 5, 12783, []string{"271"}, "first"),
		makeOutage(t, 6, 12783, []string{"271"}, "second"),
	}

	got, ok := FindForNotification(user, outages)
	require.True(t, ok)
	assert.Equal(t, 5, got.ID, "iteration order decides, not recency")
}

func TestFindForNotification_ContentEqualitySuppresses(t *testing.T) {
	user := makeUser(t, 12783, "271")
	known := makeOutage(t, 1, 12783, []string{"271"}, "Planned maintenance")
	user = user.WithNotifiedOutage(known)

	// Same period and comment under a different provider id: still suppressed.
	refetched := makeOutage(t, 999, 12783, []string{"271"}, "Planned maintenance")
	_, ok := FindForNotification(user, []Outage{refetched})
	assert.False(t, ok)
}

func TestFindForNotification_KnownFirstMatchShortCircuits(t *testing.T) {
	user := makeUser(t, 12783, "271")
	first := makeOutage(t, 1, 12783, []string{"271"}, "known")
	user = user.WithNotifiedOutage(first)

	// A second covering outage sits after the known one; the scan stops at
	// the first match, so nothing is due.
	second := makeOutage(t, 2, 12783, []string{"271"}, "brand new")
	_, ok := FindForNotification(user, []Outage{first, second})
	assert.False(t, ok)
}

func TestFindForNotification_ChangedContentIsDueAgain(t *testing.T) {
	user := makeUser(t, 12783, "271")
	user = user.WithNotifiedOutage(makeOutage(t, 1, 12783, []string{"271"}, "old comment"))

	updated := makeOutage(t, 1, 12783, []string{"271"}, "extended until evening")
	got, ok := FindForNotification(user, []Outage{updated})
	require.True(t, ok)
	assert.Equal(t, "extended until evening", got.Description.Value)
}

func TestFindForNotification_Idempotent(t *testing.T) {
	user := makeUser(t, 12783, "271")
	outages := []Outage{makeOutage(t, 1, 12783, []string{"271", "273"}, "Planned maintenance")}

	first, ok := FindForNotification(user, outages)
	require.True(t, ok)

	user = user.WithNotifiedOutage(first)
	_, ok = FindForNotification(user, outages)
	assert.False(t, ok, "second run with unchanged list must be silent")
}
