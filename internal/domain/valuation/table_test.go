package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Resolve(t *testing.T) {
	tests := []struct {
		name  string
		table *Table
		key   string
		want  float64
	}{
		{"empty key", SectorMultiples, "", DefaultSectorMultiple},
		{"exact", SectorMultiples, "Gaming", 5.0},
		{"exact composite", SectorMultiples, "Construction/Real Estate", 0.7},
		{"case insensitive", SectorMultiples, "technology", 4.5},
		{"key contains label", SectorMultiples, "software platform", 4.5},
		{"label contains key", SectorMultiples, "Gam", 5.0},
		{"unknown", SectorMultiples, "Other", DefaultSectorMultiple},
		{"geo exact", GeographyAdjustments, "Global", 1.0},
		{"geo substring", GeographyAdjustments, "US West", 1.2},
		{"geo unknown", GeographyAdjustments, "Atlantis", DefaultGeographyAdjustment},
		{"confidence sparse", SectorConfidence, "Gold", DefaultConfidence},
		{"confidence exact", SectorConfidence, "SaaS", 0.85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.table.Resolve(tt.key))
		})
	}
}

func TestTable_FirstSubstringMatchWins(t *testing.T) {
	tbl := NewTable("t", 9,
		Entry{"Alpha", 1},
		Entry{"Beta", 2},
	)
	// both rows match; table order decides
	v, label := tbl.Lookup("alphabeta")
	assert.Equal(t, 1.0, v)
	assert.Equal(t, "Alpha", label)

	// exact match beats an earlier substring match
	tbl = NewTable("t", 9, Entry{"US", 1}, Entry{"USA", 2})
	assert.Equal(t, 2.0, tbl.Resolve("USA"))
	assert.Equal(t, 1.0, tbl.Resolve("usa"))
}

func TestTable_Lookup_DefaultReportsNoLabel(t *testing.T) {
	v, label := GeographyAdjustments.Lookup("")
	assert.Equal(t, 1.0, v)
	assert.Empty(t, label)
}

func TestTable_EntriesIsCopy(t *testing.T) {
	e := SectorMultiples.Entries()
	e[0].Value = 100
	assert.Equal(t, 4.5, SectorMultiples.Resolve("Technology"))
	assert.Equal(t, "sector_multiple", SectorMultiples.Name())
	assert.Equal(t, 1.5, SectorMultiples.Default())
}

func TestSizeAdjustment(t *testing.T) {
	tests := []struct {
		revenue float64
		want    float64
	}{
		{-5, 1.0},
		{0, 1.0},
		{0.5, 1.2},
		{9.99, 1.2},
		{10, 1.0},
		{49.99, 1.0},
		{50, 0.9},
		{249.99, 0.9},
		{250, 0.7},
		{10000, 0.7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SizeAdjustment(tt.revenue), "revenue=%v", tt.revenue)
	}
}

//Personal.AI order the ending
