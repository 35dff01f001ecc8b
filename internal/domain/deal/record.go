// Package deal defines the records pulled out of free-text deal notes and the
// shapes they are forwarded in: the anonymised outcome row and the event
// envelope published per extraction run.
package deal

import (
	"strings"

	"github.com/turtacn/DealLens/pkg/errors"
)

// Classification labels shared by the extractor and the outcome row.
const (
	SectorTradingCommodities     = "Trading/Commodities"
	SectorCannabisHealthcare     = "Cannabis/Healthcare"
	SectorConstructionRealEstate = "Construction/Real Estate"
	SectorEnergy                 = "Energy"
	SectorMiningResources        = "Mining/Resources"
	SectorTechnology             = "Technology"
	SectorGamingEntertainment    = "Gaming/Entertainment"
	SectorManufacturing          = "Manufacturing"
	SectorOther                  = "Other"

	GeographyEurope       = "Europe"
	GeographyNorthAmerica = "North America"
	GeographySouthAmerica = "South America"
	GeographyAfrica       = "Africa"
	GeographyMiddleEast   = "Middle East"
	GeographyGlobal       = "Global"
)

// UnknownCompany is shown in previews when no name was found.
const UnknownCompany = "Unknown Company"

// Record is one deal found in a page section. Optional facts are nil when the
// section did not mention them and serialise as null.
type Record struct {
	Page         int      `json:"page"`
	CompanyName  *string  `json:"company_name"`
	RevenueM     *float64 `json:"revenue_m"`
	FundingNeedM *string  `json:"funding_need_m"` // kept verbatim, may be a range like "5-10"
	Sector       string   `json:"sector"`
	Geography    string   `json:"geography"`
	EBITDAInfo   *string  `json:"ebitda_info"`
	NotesSnippet string   `json:"notes_snippet"`
}

// HasFacts reports whether the record carries a name, a non-zero revenue or a
// funding need. Records without any of them are not kept.
func (r *Record) HasFacts() bool {
	return (r.CompanyName != nil && *r.CompanyName != "") ||
		(r.RevenueM != nil && *r.RevenueM != 0) ||
		(r.FundingNeedM != nil && *r.FundingNeedM != "")
}

// DisplayName returns the company name or fallback.
func (r *Record) DisplayName(fallback string) string {
	if r.CompanyName == nil || *r.CompanyName == "" {
		return fallback
	}
	return *r.CompanyName
}

// RevenueOr returns the revenue or def when absent.
func (r *Record) RevenueOr(def float64) float64 {
	if r.RevenueM == nil {
		return def
	}
	return *r.RevenueM
}

// Validate checks the fields a loaded record must carry.
func (r *Record) Validate() error {
	if r.Page < 0 {
		return errors.InvalidParam("page must not be negative")
	}
	if strings.TrimSpace(r.Sector) == "" {
		return errors.InvalidParam("sector is required")
	}
	if strings.TrimSpace(r.Geography) == "" {
		return errors.InvalidParam("geography is required")
	}
	return nil
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// Float64Ptr returns a pointer to f.
func Float64Ptr(f float64) *float64 { return &f }

//Personal.AI order the ending
