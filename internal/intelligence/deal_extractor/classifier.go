package deal_extractor

import (
	"strings"

	"github.com/turtacn/DealLens/internal/domain/deal"
)

// DetectSector returns the first sector group with a keyword in text, or
// Other. Group order is a priority order: a note that mentions both "steel"
// and "software" is Trading/Commodities.
func DetectSector(text string) string {
	return classify(text, sectorGroups, deal.SectorOther)
}

// DetectGeography returns the first region group with a keyword in text, or
// Global.
func DetectGeography(text string) string {
	return classify(text, geographyGroups, deal.GeographyGlobal)
}

func classify(text string, groups []keywordGroup, fallback string) string {
	lower := strings.ToLower(text)
	for _, g := range groups {
		if g.re.MatchString(lower) {
			return g.Label
		}
	}
	return fallback
}

// SectorLabels lists the sector labels in priority order, Other last.
func SectorLabels() []string {
	out := make([]string, 0, len(sectorGroups)+1)
	for _, g := range sectorGroups {
		out = append(out, g.Label)
	}
	return append(out, deal.SectorOther)
}

// GeographyLabels lists the region labels in priority order, Global last.
func GeographyLabels() []string {
	out := make([]string, 0, len(geographyGroups)+1)
	for _, g := range geographyGroups {
		out = append(out, g.Label)
	}
	return append(out, deal.GeographyGlobal)
}

//Personal.AI order the ending
