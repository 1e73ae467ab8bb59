package loe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixedClock() time.Time {
	return time.Date(2024, 11, 28, 12, 0, 0, 0, time.UTC)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, fixedClock, zap.NewNop())
}

func TestFetchOutages_ParsesFeed(t *testing.T) {
	body := `{
		"hydra:member": [
			{
				"id": 17,
				"dateEvent": "2024-11-28T06:47:00+02:00",
				"datePlanIn": "2024-11-28T10:00:00+02:00",
				"koment": "Планові роботи.\nМожливі зміни.",
				"buildingNames": ["271", " 273 "],
				"city": {"name": "Львів"},
				"street": {"id": 12783, "name": "Шевченка"}
			}
		]
	}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/ld+json")
		_, _ = w.Write([]byte(body))
	})

	records, err := c.FetchOutages(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 17, rec.ID)
	assert.Equal(t, "Львів", rec.City)
	assert.Equal(t, 12783, rec.StreetID)
	assert.Equal(t, "Шевченка", rec.StreetName)
	assert.Equal(t, []string{"271", "273"}, rec.Buildings)
	assert.Equal(t, "Планові роботи. Можливі зміни.", rec.Comment, "newlines collapsed")
	assert.True(t, rec.Start.Equal(time.Date(2024, 11, 28, 4, 47, 0, 0, time.UTC)))
	assert.True(t, rec.End.Equal(time.Date(2024, 11, 28, 8, 0, 0, 0, time.UTC)))
}

func TestFetchOutages_PolymorphicFields(t *testing.T) {
	body := `{
		"hydra:member": [
			{
				"id": "42",
				"dateEvent": "2024-11-28T06:47:00",
				"datePlanIn": "",
				"koment": "test",
				"buildingNames": "1, 2 ,3",
				"street": {"id": "12783", "name": "Шевченка"}
			}
		]
	}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	records, err := c.FetchOutages(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 42, rec.ID, "string id coerced")
	assert.Equal(t, 12783, rec.StreetID)
	assert.Equal(t, []string{"1", "2", "3"}, rec.Buildings, "comma string split")
	assert.Equal(t, fixedClock(), rec.End, "missing date falls back to clock")
}

func TestFetchOutages_DuplicateRowsLastWins(t *testing.T) {
	body := `{
		"hydra:member": [
			{
				"id": 1,
				"dateEvent": "2024-11-28T06:47:00+02:00",
				"datePlanIn": "2024-11-28T10:00:00+02:00",
				"koment": "first version",
				"buildingNames": ["271"],
				"street": {"id": 12783, "name": "Шевченка"}
			},
			{
				"id": 2,
				"dateEvent": "2024-11-28T06:47:00+02:00",
				"datePlanIn": "2024-11-28T10:00:00+02:00",
				"koment": "edited version",
				"buildingNames": ["271"],
				"street": {"id": 12783, "name": "Шевченка"}
			}
		]
	}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	records, err := c.FetchOutages(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1, "same street/buildings/period collapses")
	assert.Equal(t, "edited version", records[0].Comment)
	assert.Equal(t, 2, records[0].ID)
}

func TestFetchOutages_EmptyFeed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hydra:member": []}`))
	})

	records, err := c.FetchOutages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchOutages_Non200IsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	records, err := c.FetchOutages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchOutages_MalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.FetchOutages(context.Background())
	assert.Error(t, err)
}

func TestFetchOutages_SkipsUnparseableRows(t *testing.T) {
	body := `{
		"hydra:member": [
			"just a string",
			{
				"id": 1,
				"dateEvent": "2024-11-28T06:47:00+02:00",
				"datePlanIn": "2024-11-28T10:00:00+02:00",
				"koment": "ok",
				"buildingNames": ["271"],
				"street": {"id": 12783, "name": "Шевченка"}
			}
		]
	}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	records, err := c.FetchOutages(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ok", records[0].Comment)
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 5, toInt(float64(5)))
	assert.Equal(t, 5, toInt("5"))
	assert.Equal(t, 5, toInt(" 5 "))
	assert.Equal(t, 5, toInt("5.9"))
	assert.Equal(t, 0, toInt("abc"))
	assert.Equal(t, 0, toInt(nil))
	assert.Equal(t, 0, toInt(true))
}
