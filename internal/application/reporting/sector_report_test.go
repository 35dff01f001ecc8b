package reporting

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/pkg/errors"
)

func reportRecords() []deal.Record {
	return []deal.Record{
		{Page: 3, RevenueM: deal.Float64Ptr(45.5), Sector: "Technology", Geography: "North America"},
		{Page: 4, Sector: "Mining/Resources", Geography: "South America"},
		{Page: 6, RevenueM: deal.Float64Ptr(7.5), Sector: "Energy", Geography: "Africa"},
		{Page: 9, RevenueM: deal.Float64Ptr(0), Sector: "Technology", Geography: "North America"},
	}
}

func TestBuildSectorReport(t *testing.T) {
	report := BuildSectorReport(reportRecords(), nil, 50)

	assert.Equal(t, 4, report.Deals)
	assert.Equal(t, 50.0, report.DefaultRevenueM)
	assert.Equal(t, []SectorRow{
		{Sector: "Technology", Deals: 2, WithRevenue: 1, MeanMultiple: 5.13, MeanEVM: 244.3, TotalEVM: 488.7},
		{Sector: "Energy", Deals: 1, WithRevenue: 1, MeanMultiple: 1.26, MeanEVM: 9.4, TotalEVM: 9.4},
		{Sector: "Mining/Resources", Deals: 1, WithRevenue: 0, MeanMultiple: 0.76, MeanEVM: 37.8, TotalEVM: 37.8},
	}, report.Sectors)
}

func TestBuildSectorReport_TieBreaksOnName(t *testing.T) {
	records := []deal.Record{
		{Sector: "Oil", Geography: "Global", RevenueM: deal.Float64Ptr(20)},
		{Sector: "Energy", Geography: "Global", RevenueM: deal.Float64Ptr(20)},
	}
	report := BuildSectorReport(records, nil, 50)
	require.Len(t, report.Sectors, 2)
	assert.Equal(t, "Energy", report.Sectors[0].Sector)
	assert.Equal(t, "Oil", report.Sectors[1].Sector)
}

func TestBuildSectorReport_Empty(t *testing.T) {
	report := BuildSectorReport(nil, nil, 50)
	assert.Equal(t, 0, report.Deals)
	assert.Empty(t, report.Sectors)

	var buf bytes.Buffer
	require.NoError(t, WriteSectorReport(&buf, report, FormatJSON))
	assert.Contains(t, buf.String(), `"sectors": []`)
}

func TestWriteSectorReport_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSectorReport(&buf, BuildSectorReport(reportRecords(), nil, 50), FormatCSV))

	assert.Equal(t, "sector,deals,with_revenue,mean_multiple,mean_ev_m,total_ev_m\n"+
		"Technology,2,1,5.13,244.3,488.7\n"+
		"Energy,1,1,1.26,9.4,9.4\n"+
		"Mining/Resources,1,0,0.76,37.8,37.8\n", buf.String())
}

func TestWriteSectorReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	report := BuildSectorReport(reportRecords(), nil, 50)
	require.NoError(t, WriteSectorReport(&buf, report, FormatJSON))

	var decoded SectorReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *report, decoded)
}

func TestWriteSectorReport_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSectorReport(&buf, BuildSectorReport(reportRecords(), nil, 50), FormatTable))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "SECTOR"))
	assert.Equal(t, []string{"Technology", "2", "1", "5.13x", "244.3", "488.7"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Mining/Resources", "1", "0", "0.76x", "37.8", "37.8"}, strings.Fields(lines[3]))
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "4 deals, missing revenue scored at €50.0M", lines[5])
}

func TestParseReportFormat(t *testing.T) {
	for in, want := range map[string]ReportFormat{"": FormatTable, "TABLE": FormatTable, " json ": FormatJSON, "csv": FormatCSV} {
		got, err := ParseReportFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseReportFormat("xml")
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

//Personal.AI order the ending
