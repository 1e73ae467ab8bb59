package admin

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/sl4wa/outages-bot/internal/domain"
	"github.com/sl4wa/outages-bot/internal/notifier"
)

// ListOutages fetches the current schedule and normalizes it into domain
// outages.
func ListOutages(ctx context.Context, source notifier.Source, log *zap.Logger) ([]domain.Outage, error) {
	records, err := source.FetchOutages(ctx)
	if err != nil {
		return nil, err
	}
	return notifier.BuildOutages(records, log), nil
}

// RenderOutages prints the current outage schedule as a table.
func RenderOutages(w io.Writer, outages []domain.Outage) error {
	if len(outages) == 0 {
		fmt.Fprintln(w, "No outages found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "StreetID\tStreet\tBuildings\tPeriod\tComment")

	for _, o := range outages {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			o.Address.StreetID,
			o.Address.StreetName,
			strings.Join(o.Address.Buildings, ", "),
			PeriodFormat(o.Period.Start, o.Period.End),
			o.Description.Value,
		)
	}

	return tw.Flush()
}
