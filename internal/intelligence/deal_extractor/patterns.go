package deal_extractor

import (
	"regexp"

	"github.com/turtacn/DealLens/internal/domain/deal"
)

// ---------------------------------------------------------------------------
// Section and fact patterns
// ---------------------------------------------------------------------------

// pageMarkerRe separates page sections. Page numbers in the marker are
// ignored; a section's page is its position in the split.
var pageMarkerRe = regexp.MustCompile(`--- PAGE \d+ ---`)

// companyPatterns are tried in order against the section header only.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([A-Z][A-Za-z0-9\s&\.\-]+?)(?:\s{2,}|\n)`),
	regexp.MustCompile(`(?:Company|Client|Deal):\s*([A-Za-z0-9\s&\.\-]+)`),
	regexp.MustCompile(`(?:Call with|Meeting with|Re:)\s*([A-Za-z0-9\s&\.\-]+)`),
}

// revenuePatterns capture a decimal figure in millions.
var revenuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Revenue|Turnover|Annual|Sales)[:\s]*[\$€]?(\d+(?:\.\d+)?)\s*(?:M|Million|MM)`),
	regexp.MustCompile(`(?i)[\$€](\d+(?:\.\d+)?)\s*(?:M|Million)\s*(?:revenue|turnover)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:M|Million)\s*(?:in revenue|annual)`),
}

// fundingPatterns capture an amount or an "a-b" range in millions.
var fundingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Looking for|Need|Seeking|Raise|Raising)[:\s]*[\$€]?(\d+(?:-\d+)?)\s*(?:M|Million)`),
	regexp.MustCompile(`(?i)[\$€](\d+(?:-\d+)?)\s*(?:M|Million)\s*(?:funding|raise|loan|debt)`),
}

// ebitdaRe matches an EBITDA (or EBIDA) mention; the whole match is kept.
var ebitdaRe = regexp.MustCompile(`(?i)EBIT?DA[:\s]*(\d+(?:\.\d+)?)[%M]`)

// ---------------------------------------------------------------------------
// Keyword groups
// ---------------------------------------------------------------------------

// keywordGroup maps a word-bounded keyword alternation to a label.
type keywordGroup struct {
	Label string
	re    *regexp.Regexp
}

func group(label, alternation string) keywordGroup {
	return keywordGroup{Label: label, re: regexp.MustCompile(`\b(?:` + alternation + `)\b`)}
}

// sectorGroups are matched in order against lowercased text; first hit wins.
var sectorGroups = []keywordGroup{
	group(deal.SectorTradingCommodities, `steel|metal|commodity|trading`),
	group(deal.SectorCannabisHealthcare, `cannabis|pharma|medical|healthcare|cbd`),
	group(deal.SectorConstructionRealEstate, `construction|contractor|real estate|housing|property|cntnr`),
	group(deal.SectorEnergy, `energy|oil|gas|lng|power|renewable|solar`),
	group(deal.SectorMiningResources, `mining|gold|ore|processing|extraction|inca`),
	group(deal.SectorTechnology, `tech|software|ai|computer|data|fintech|saas`),
	group(deal.SectorGamingEntertainment, `gaming|esports|entertainment`),
	group(deal.SectorManufacturing, `manufacturing|industrial|production|paper`),
}

// geographyGroups are matched in order against lowercased text.
var geographyGroups = []keywordGroup{
	group(deal.GeographyEurope, `sweden|norway|denmark|portugal|france|uk|spain|germany|europe`),
	group(deal.GeographyNorthAmerica, `usa|canada|united states|american|nasdaq`),
	group(deal.GeographySouthAmerica, `brazil|peru|colombia|chile|latin`),
	group(deal.GeographyAfrica, `ghana|nigeria|angola|mozambique|south africa|africa`),
	group(deal.GeographyMiddleEast, `dubai|saudi|uae|middle east`),
}

//Personal.AI order the ending
