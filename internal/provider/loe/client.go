// Package loe talks to the Lviv power-outage schedule API and flattens its
// hydra/JSON-LD response into plain outage records.
package loe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sl4wa/outages-bot/internal/notifier"
)

// DefaultURL targets the public LOE accidents feed for Lviv city.
const DefaultURL = "https://power-api.loe.lviv.ua/api/pw_accidents?pagination=false&otg.id=28&city.id=693"

var newlineRe = regexp.MustCompile(`[\r\n]+`)

// Client fetches outages over HTTP. It implements notifier.Source.
type Client struct {
	url    string
	client *http.Client
	clock  func() time.Time
	log    *zap.Logger
}

// NewClient creates a Client. Empty url selects DefaultURL; nil clock uses
// time.Now.
func NewClient(url string, clock func() time.Time, log *zap.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	if clock == nil {
		clock = time.Now
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		clock:  clock,
		log:    log,
	}
}

// apiResponse and apiRow mirror the provider's wire shape. Several fields are
// polymorphic (numbers or strings, arrays or comma-joined strings), so they
// are decoded leniently.
type apiResponse struct {
	HydraMember []json.RawMessage `json:"hydra:member"`
}

type apiRow struct {
	ID            any             `json:"id"`
	DateEvent     string          `json:"dateEvent"`
	DatePlanIn    string          `json:"datePlanIn"`
	Koment        string          `json:"koment"`
	BuildingNames json.RawMessage `json:"buildingNames"`
	City          json.RawMessage `json:"city"`
	Street        json.RawMessage `json:"street"`
}

type cityObj struct {
	Name string `json:"name"`
}

type streetObj struct {
	ID   any    `json:"id"`
	Name string `json:"name"`
}

// FetchOutages downloads and normalizes the current outage list. A non-200
// response is logged and treated as an empty feed; transport and decode
// failures are returned to the caller.
func (c *Client) FetchOutages(ctx context.Context) ([]notifier.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch outages: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("outage API returned unexpected status", zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	var records []notifier.Record
	// The feed repeats rows for the same street/buildings/period as the
	// provider edits them; the last occurrence wins.
	seen := make(map[string]int)

	for _, raw := range apiResp.HydraMember {
		var row apiRow
		if err := json.Unmarshal(raw, &row); err != nil {
			continue
		}

		comment := strings.TrimSpace(newlineRe.ReplaceAllString(row.Koment, " "))
		buildings := parseBuildings(row.BuildingNames)

		var city cityObj
		if row.City != nil {
			_ = json.Unmarshal(row.City, &city)
		}
		var street streetObj
		if row.Street != nil {
			_ = json.Unmarshal(row.Street, &street)
		}

		rec := notifier.Record{
			ID:         toInt(row.ID),
			Start:      c.parseDate(row.DateEvent),
			End:        c.parseDate(row.DatePlanIn),
			City:       city.Name,
			StreetID:   toInt(street.ID),
			StreetName: street.Name,
			Buildings:  buildings,
			Comment:    comment,
		}

		key := fmt.Sprintf("%d|%s|%d|%d",
			rec.StreetID, strings.Join(buildings, ","), rec.Start.Unix(), rec.End.Unix())
		if idx, ok := seen[key]; ok {
			records[idx] = rec
		} else {
			seen[key] = len(records)
			records = append(records, rec)
		}
	}

	return records, nil
}

func (c *Client) parseDate(s string) time.Time {
	if s == "" {
		return c.clock()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t
	}
	return c.clock()
}

// parseBuildings accepts either a JSON array or a comma-joined string.
func parseBuildings(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}

	var arr []any
	if err := json.Unmarshal(raw, &arr); err == nil {
		var buildings []string
		for _, item := range arr {
			if s := strings.TrimSpace(fmt.Sprintf("%v", item)); s != "" {
				buildings = append(buildings, s)
			}
		}
		return buildings
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var buildings []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				buildings = append(buildings, part)
			}
		}
		return buildings
	}

	return nil
}

// toInt coerces the provider's polymorphic id values (numbers, numeric
// strings, occasionally floats) into an int, defaulting to zero.
func toInt(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		val = strings.TrimSpace(val)
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(val, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}
