package notifier

import (
	"go.uber.org/zap"

	"github.com/sl4wa/outages-bot/internal/domain"
)

// BuildOutages turns raw provider records into validated domain outages.
// Records that fail validation are logged and skipped; one bad row never
// poisons the rest of the feed.
func BuildOutages(records []Record, log *zap.Logger) []domain.Outage {
	outages := make([]domain.Outage, 0, len(records))
	for _, rec := range records {
		period, err := domain.NewPeriod(rec.Start, rec.End)
		if err != nil {
			log.Warn("skipping outage record", zap.Int("id", rec.ID), zap.Error(err))
			continue
		}
		addr, err := domain.NewAddress(rec.StreetID, rec.StreetName, rec.Buildings, rec.City)
		if err != nil {
			log.Warn("skipping outage record", zap.Int("id", rec.ID), zap.Error(err))
			continue
		}
		outages = append(outages, domain.Outage{
			ID:          rec.ID,
			Period:      period,
			Address:     addr,
			Description: domain.Description{Value: rec.Comment},
		})
	}
	return outages
}
