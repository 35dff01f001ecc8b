// Package reporting aggregates scored deal records into sector summaries and
// renders them for the CLI.
package reporting

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/internal/domain/valuation"
	"github.com/turtacn/DealLens/pkg/errors"
)

// ReportFormat selects how a report is rendered.
type ReportFormat string

const (
	FormatTable ReportFormat = "table"
	FormatJSON  ReportFormat = "json"
	FormatCSV   ReportFormat = "csv"
)

// ParseReportFormat accepts table, json or csv in any case.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatCSV:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", errors.InvalidParam(fmt.Sprintf("unknown report format %q", s))
	}
}

// SectorRow summarises the records sharing one sector label.
type SectorRow struct {
	Sector       string  `json:"sector"`
	Deals        int     `json:"deals"`
	WithRevenue  int     `json:"with_revenue"`
	MeanMultiple float64 `json:"mean_multiple"`
	MeanEVM      float64 `json:"mean_ev_m"`
	TotalEVM     float64 `json:"total_ev_m"`
}

// SectorReport is the per-sector view of a records file.
type SectorReport struct {
	Deals           int         `json:"deals"`
	DefaultRevenueM float64     `json:"default_revenue_m"`
	Sectors         []SectorRow `json:"sectors"`
}

type scored struct {
	sector     string
	hasRevenue bool
	multiple   float64
	ev         float64
}

// BuildSectorReport scores every record and groups the results by sector.
// Records without a revenue (nil or zero) are scored at defaultRevenueM.
func BuildSectorReport(records []deal.Record, scorer valuation.Scorer, defaultRevenueM float64) *SectorReport {
	if scorer == nil {
		scorer = valuation.Default()
	}

	items := lo.Map(records, func(r deal.Record, _ int) scored {
		rev := r.RevenueOr(0)
		has := rev != 0
		if !has {
			rev = defaultRevenueM
		}
		v := scorer.Score(r.Sector, r.Geography, rev)
		return scored{sector: r.Sector, hasRevenue: has, multiple: v.Multiple, ev: v.EnterpriseValue}
	})

	groups := lo.GroupBy(items, func(s scored) string { return s.sector })
	rows := make([]SectorRow, 0, len(groups))
	for sector, group := range groups {
		n := float64(len(group))
		total := lo.SumBy(group, func(s scored) float64 { return s.ev })
		rows = append(rows, SectorRow{
			Sector:       sector,
			Deals:        len(group),
			WithRevenue:  lo.CountBy(group, func(s scored) bool { return s.hasRevenue }),
			MeanMultiple: valuation.Round(lo.SumBy(group, func(s scored) float64 { return s.multiple })/n, 2),
			MeanEVM:      valuation.Round(total/n, 1),
			TotalEVM:     valuation.Round(total, 1),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MeanMultiple != rows[j].MeanMultiple {
			return rows[i].MeanMultiple > rows[j].MeanMultiple
		}
		return rows[i].Sector < rows[j].Sector
	})

	return &SectorReport{Deals: len(records), DefaultRevenueM: defaultRevenueM, Sectors: rows}
}

var csvHeader = []string{"sector", "deals", "with_revenue", "mean_multiple", "mean_ev_m", "total_ev_m"}

// WriteSectorReport renders report to w in format.
func WriteSectorReport(w io.Writer, report *SectorReport, format ReportFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "encode sector report")
		}
		return nil

	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return errors.Wrap(err, errors.ErrCodeExportFailed, "write csv header")
		}
		for _, r := range report.Sectors {
			rec := []string{
				r.Sector,
				strconv.Itoa(r.Deals),
				strconv.Itoa(r.WithRevenue),
				valuation.FormatNumber(r.MeanMultiple),
				valuation.FormatNumber(r.MeanEVM),
				valuation.FormatNumber(r.TotalEVM),
			}
			if err := cw.Write(rec); err != nil {
				return errors.Wrap(err, errors.ErrCodeExportFailed, "write csv row")
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return errors.Wrap(err, errors.ErrCodeExportFailed, "flush csv")
		}
		return nil

	case FormatTable, "":
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "SECTOR\tDEALS\tWITH REVENUE\tMEAN MULTIPLE\tMEAN EV (€M)\tTOTAL EV (€M)")
		for _, r := range report.Sectors {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%sx\t%s\t%s\n",
				r.Sector, r.Deals, r.WithRevenue,
				valuation.FormatNumber(r.MeanMultiple),
				valuation.FormatNumber(r.MeanEVM),
				valuation.FormatNumber(r.TotalEVM))
		}
		fmt.Fprintf(tw, "\n%d deals, missing revenue scored at €%sM\n", report.Deals, valuation.FormatNumber(report.DefaultRevenueM))
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, errors.ErrCodeExportFailed, "write sector report")
		}
		return nil

	default:
		return errors.InvalidParam(fmt.Sprintf("unknown report format %q", format))
	}
}

//Personal.AI order the ending
