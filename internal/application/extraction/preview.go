package extraction

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/internal/domain/valuation"
)

// WritePreview prints the human run report: counts, the first limit records
// and where the output went.
func WritePreview(w io.Writer, s *RunSummary, limit int) error {
	rule := strings.Repeat("=", 50)
	p := &printer{w: w}

	p.printf("Extracted %s characters from %s\n", humanize.Comma(int64(s.Characters)), s.Source)
	p.printf("Found %d potential deals\n", len(s.Records))

	p.printf("\n%s\nEXTRACTED DEALS\n%s\n", rule, rule)
	WriteRecords(p, s.Records, limit)

	p.printf("\n%s\nSAVED\n%s\n", rule, rule)
	p.printf("Saved %d deals to %s\n", len(s.Records), s.OutputPath)
	for _, f := range s.Forwards {
		p.printf("%s: %d written, %d failed\n", f.Sink, f.Written, f.Failed)
	}
	return p.err
}

// WriteRecords prints up to limit records followed by a "... and K more
// deals" line when some were left out. A non-positive limit prints all.
func WriteRecords(w io.Writer, records []deal.Record, limit int) {
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}
	for i := 0; i < limit; i++ {
		r := &records[i]
		fmt.Fprintf(w, "\n%d. %s\n", i+1, r.DisplayName(deal.UnknownCompany))
		fmt.Fprintf(w, "   Page: %d\n", r.Page)
		fmt.Fprintf(w, "   Sector: %s\n", r.Sector)
		fmt.Fprintf(w, "   Geography: %s\n", r.Geography)
		if r.RevenueM != nil && *r.RevenueM != 0 {
			fmt.Fprintf(w, "   Revenue: €%sM\n", valuation.FormatNumber(*r.RevenueM))
		}
		if r.FundingNeedM != nil && *r.FundingNeedM != "" {
			fmt.Fprintf(w, "   Funding Need: €%sM\n", *r.FundingNeedM)
		}
		if r.EBITDAInfo != nil && *r.EBITDAInfo != "" {
			fmt.Fprintf(w, "   EBITDA: %s\n", *r.EBITDAInfo)
		}
	}
	if rest := len(records) - limit; rest > 0 {
		fmt.Fprintf(w, "\n... and %d more deals\n", rest)
	}
}

// printer keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) Write(b []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	n, err := p.w.Write(b)
	p.err = err
	return n, err
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p, format, args...)
}

//Personal.AI order the ending
