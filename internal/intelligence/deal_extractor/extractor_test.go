package deal_extractor

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/pkg/errors"
)

func loadNotes(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/notes.txt")
	require.NoError(t, err)
	return string(b)
}

func TestExtract_Notes(t *testing.T) {
	res, err := NewDefault().Extract(context.Background(), loadNotes(t))
	require.NoError(t, err)

	assert.Equal(t, 7, res.SectionCount)
	assert.Equal(t, 2, res.SkippedShort)
	assert.Equal(t, 1, res.SkippedNoFacts)
	require.Len(t, res.Records, 4)

	r := res.Records[0]
	assert.Equal(t, 1, r.Page)
	require.NotNil(t, r.CompanyName)
	assert.Equal(t, "Nordic Steel AB", *r.CompanyName)
	require.NotNil(t, r.RevenueM)
	assert.Equal(t, 120.0, *r.RevenueM)
	require.NotNil(t, r.FundingNeedM)
	assert.Equal(t, "15", *r.FundingNeedM)
	require.NotNil(t, r.EBITDAInfo)
	assert.Equal(t, "EBITDA 8%", *r.EBITDAInfo)
	assert.Equal(t, deal.SectorTradingCommodities, r.Sector)
	assert.Equal(t, deal.GeographyEurope, r.Geography)
	assert.True(t, strings.HasPrefix(r.NotesSnippet, "Nordic Steel AB\nCall notes"))

	r = res.Records[1]
	assert.Equal(t, 3, r.Page)
	assert.Nil(t, r.CompanyName, "greedy name captures run past the length limit")
	assert.Equal(t, 45.5, *r.RevenueM)
	assert.Equal(t, "5-10", *r.FundingNeedM)
	assert.Nil(t, r.EBITDAInfo)
	assert.Equal(t, deal.SectorTechnology, r.Sector)
	assert.Equal(t, deal.GeographyNorthAmerica, r.Geography)

	r = res.Records[2]
	assert.Equal(t, 5, r.Page)
	assert.Equal(t, "Inca Gold Processing\nPeru gold mining operation", *r.CompanyName)
	assert.Nil(t, r.RevenueM)
	assert.Nil(t, r.FundingNeedM)
	assert.Equal(t, "EBIDA: 12M", *r.EBITDAInfo)
	assert.Equal(t, deal.SectorMiningResources, r.Sector)
	assert.Equal(t, deal.GeographySouthAmerica, r.Geography)

	r = res.Records[3]
	assert.Equal(t, 6, r.Page)
	assert.Nil(t, r.CompanyName)
	assert.Equal(t, 7.5, *r.RevenueM)
	assert.Equal(t, deal.SectorEnergy, r.Sector)
	assert.Equal(t, deal.GeographyAfrica, r.Geography)
}

func TestExtract_Idempotent(t *testing.T) {
	text := loadNotes(t)
	e := NewDefault()
	a := e.ExtractRecords(text)
	b := e.ExtractRecords(text)
	assert.Equal(t, a, b)
}

func TestExtract_EmptyAndShort(t *testing.T) {
	e := NewDefault()
	assert.Empty(t, e.ExtractRecords(""))
	assert.Empty(t, e.ExtractRecords("Acme Corp  Revenue 10M"))
	assert.NotNil(t, e.ExtractRecords(""), "no records is an empty slice")
}

func TestExtract_NoMarkersIsOnePage(t *testing.T) {
	text := "Company: Baltic Data, a software vendor with Revenue: 12M and a growing book of clients."
	recs := NewDefault().ExtractRecords(text)
	require.Len(t, recs, 1)
	assert.Equal(t, 0, recs[0].Page)
	assert.Equal(t, "Baltic Data", *recs[0].CompanyName)
	assert.Equal(t, 12.0, *recs[0].RevenueM)
	assert.Equal(t, deal.SectorTechnology, recs[0].Sector)
}

func TestExtract_ZeroRevenueOnlyIsDropped(t *testing.T) {
	res, err := NewDefault().Extract(context.Background(),
		"this page notes revenue: 0M for the quarter and nothing else of interest at all here")
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Equal(t, 1, res.SkippedNoFacts)
}

func TestExtract_RuneLengths(t *testing.T) {
	// 49 runes but more than 50 bytes
	short := strings.Repeat("é", 40) + " Raise 5M"
	require.Equal(t, 49, len([]rune(short)))
	assert.Empty(t, NewDefault().ExtractRecords(short))

	long := "Need €3M " + strings.Repeat("ø", 600)
	recs := NewDefault().ExtractRecords(long)
	require.Len(t, recs, 1)
	assert.Equal(t, 500, len([]rune(recs[0].NotesSnippet)))
	assert.Equal(t, "3", *recs[0].FundingNeedM)
}

func TestExtract_NameLengthBounds(t *testing.T) {
	pad := strings.Repeat(" filler", 10)
	recs := NewDefault().ExtractRecords("Client: AB, " + pad)
	assert.Empty(t, recs, "two letter names are rejected")

	recs = NewDefault().ExtractRecords("Client: ABC, " + pad)
	require.Len(t, recs, 1)
	assert.Equal(t, "ABC", *recs[0].CompanyName)

	recs = NewDefault().ExtractRecords("Client: Baltic Data Systems\nA software vendor with Revenue: 12M and more")
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].CompanyName, "fifty rune capture is rejected")
}

func TestExtract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDefault().Extract(ctx, loadNotes(t))
	assert.True(t, errors.IsCode(err, errors.ErrCodeExtractionFailed))
}

func TestNewDealExtractor_Validation(t *testing.T) {
	_, err := NewDealExtractor(DefaultExtractorConfig())
	assert.NoError(t, err)

	cfg := DefaultExtractorConfig()
	cfg.SnippetLength = 0
	_, err = NewDealExtractor(cfg)
	assert.Error(t, err)

	cfg = DefaultExtractorConfig()
	cfg.MaxNameLength = 2
	_, err = NewDealExtractor(cfg)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestPrefixRunes(t *testing.T) {
	assert.Equal(t, "", prefixRunes("abc", 0))
	assert.Equal(t, "ab", prefixRunes("abc", 2))
	assert.Equal(t, "abc", prefixRunes("abc", 10))
	assert.Equal(t, "€€", prefixRunes("€€€", 2))
}

//Personal.AI order the ending
