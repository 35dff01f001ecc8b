// Package deal_extractor turns page-delimited free-text deal notes into
// structured deal records using ordered regular-expression heuristics.
package deal_extractor

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/pkg/errors"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// ExtractorConfig holds the section and name limits. Lengths are in runes.
type ExtractorConfig struct {
	MinSectionLength int `json:"min_section_length" yaml:"min_section_length"`
	SnippetLength    int `json:"snippet_length" yaml:"snippet_length"`
	HeaderLength     int `json:"header_length" yaml:"header_length"`
	// A company name is accepted when MinNameLength < len < MaxNameLength.
	MinNameLength int `json:"min_name_length" yaml:"min_name_length"`
	MaxNameLength int `json:"max_name_length" yaml:"max_name_length"`
}

// DefaultExtractorConfig returns the limits used for note extraction.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		MinSectionLength: 50,
		SnippetLength:    500,
		HeaderLength:     300,
		MinNameLength:    2,
		MaxNameLength:    50,
	}
}

// ---------------------------------------------------------------------------
// Result
// ---------------------------------------------------------------------------

// ExtractionResult is the output of a single Extract call.
type ExtractionResult struct {
	Records          []deal.Record `json:"records"`
	SectionCount     int           `json:"section_count"`
	SkippedShort     int           `json:"skipped_short"`
	SkippedNoFacts   int           `json:"skipped_no_facts"`
	TextLength       int           `json:"text_length"`
	ProcessingTimeMs int64         `json:"processing_time_ms"`
}

// ---------------------------------------------------------------------------
// Extractor
// ---------------------------------------------------------------------------

// Extractor parses deal notes.
type Extractor interface {
	Extract(ctx context.Context, text string) (*ExtractionResult, error)
}

// DealExtractor is the regex based Extractor. It holds no mutable state and
// is safe for concurrent use.
type DealExtractor struct {
	config ExtractorConfig
}

// NewDealExtractor validates cfg and returns an extractor.
func NewDealExtractor(cfg ExtractorConfig) (*DealExtractor, error) {
	if cfg.MinSectionLength < 0 || cfg.SnippetLength <= 0 || cfg.HeaderLength <= 0 {
		return nil, errors.New(errors.ErrCodeValidation, "extractor lengths must be positive")
	}
	if cfg.MaxNameLength <= cfg.MinNameLength {
		return nil, errors.Newf(errors.ErrCodeValidation,
			"max_name_length (%d) must exceed min_name_length (%d)", cfg.MaxNameLength, cfg.MinNameLength)
	}
	return &DealExtractor{config: cfg}, nil
}

// NewDefault returns an extractor with DefaultExtractorConfig.
func NewDefault() *DealExtractor {
	return &DealExtractor{config: DefaultExtractorConfig()}
}

// Extract splits text on page markers and returns a record for every section
// that is long enough and mentions a company, a revenue or a funding need.
// Records are in page order. The same input always yields the same records.
func (e *DealExtractor) Extract(ctx context.Context, text string) (*ExtractionResult, error) {
	start := time.Now()
	res := &ExtractionResult{
		Records:    []deal.Record{},
		TextLength: utf8.RuneCountInString(text),
	}

	// Step 1: split into sections.
	sections := pageMarkerRe.Split(text, -1)
	res.SectionCount = len(sections)

	for page, raw := range sections {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeExtractionFailed, "extraction cancelled")
		}

		// Step 2: drop sections too short to hold a deal.
		section := strings.TrimSpace(raw)
		if utf8.RuneCountInString(section) < e.config.MinSectionLength {
			res.SkippedShort++
			continue
		}

		// Step 3: pull facts and classify.
		rec := e.parseSection(page, section)
		if !rec.HasFacts() {
			res.SkippedNoFacts++
			continue
		}
		res.Records = append(res.Records, rec)
	}

	res.ProcessingTimeMs = time.Since(start).Milliseconds()
	return res, nil
}

// ExtractRecords is Extract without the bookkeeping. It never fails.
func (e *DealExtractor) ExtractRecords(text string) []deal.Record {
	res, err := e.Extract(context.Background(), text)
	if err != nil {
		return nil
	}
	return res.Records
}

func (e *DealExtractor) parseSection(page int, section string) deal.Record {
	return deal.Record{
		Page:         page,
		CompanyName:  e.findCompany(prefixRunes(section, e.config.HeaderLength)),
		RevenueM:     findRevenue(section),
		FundingNeedM: findFunding(section),
		Sector:       DetectSector(section),
		Geography:    DetectGeography(section),
		EBITDAInfo:   findEBITDA(section),
		NotesSnippet: prefixRunes(section, e.config.SnippetLength),
	}
}

// findCompany returns the first pattern hit whose trimmed length is in range.
// A hit outside the range does not stop the search.
func (e *DealExtractor) findCompany(header string) *string {
	for _, re := range companyPatterns {
		m := re.FindStringSubmatch(header)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		n := utf8.RuneCountInString(name)
		if n > e.config.MinNameLength && n < e.config.MaxNameLength {
			return &name
		}
	}
	return nil
}

func findRevenue(section string) *float64 {
	for _, re := range revenuePatterns {
		m := re.FindStringSubmatch(section)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

func findFunding(section string) *string {
	for _, re := range fundingPatterns {
		if m := re.FindStringSubmatch(section); m != nil {
			v := m[1]
			return &v
		}
	}
	return nil
}

func findEBITDA(section string) *string {
	m := ebitdaRe.FindString(section)
	if m == "" {
		return nil
	}
	return &m
}

// prefixRunes returns at most n runes of s.
func prefixRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

//Personal.AI order the ending
