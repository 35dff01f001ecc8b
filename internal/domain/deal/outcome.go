package deal

import "fmt"

// Fixed values for rows created from note extraction.
const (
	OutcomeDealType         = "acquisition"
	OutcomeFirstContactDate = "2020-01-01"
	OutcomeProspect         = "prospect"
)

// Outcome is the anonymised row written to the deal_outcomes table.
type Outcome struct {
	OrganizationID     string `json:"organization_id" db:"organization_id"`
	Sector             string `json:"sector" db:"sector"`
	TargetGeography    string `json:"target_geography" db:"target_geography"`
	DealType           string `json:"deal_type" db:"deal_type"`
	FirstContactDate   string `json:"first_contact_date" db:"first_contact_date"`
	TargetRevenueRange string `json:"target_revenue_range" db:"target_revenue_range"`
	DealOutcome        string `json:"deal_outcome" db:"deal_outcome"`
	WhatWentWell       string `json:"what_went_well" db:"what_went_well"`
	IsAnonymous        bool   `json:"is_anonymous" db:"is_anonymous"`
	SharedWithNetwork  bool   `json:"shared_with_network" db:"shared_with_network"`
}

// NewOutcome maps a record onto an outcome row for organizationID.
func NewOutcome(organizationID string, r *Record) Outcome {
	sector := r.Sector
	if sector == "" {
		sector = SectorOther
	}
	geo := r.Geography
	if geo == "" {
		geo = GeographyGlobal
	}
	return Outcome{
		OrganizationID:     organizationID,
		Sector:             sector,
		TargetGeography:    geo,
		DealType:           OutcomeDealType,
		FirstContactDate:   OutcomeFirstContactDate,
		TargetRevenueRange: BucketRevenue(r.RevenueM),
		DealOutcome:        OutcomeProspect,
		WhatWentWell:       fmt.Sprintf("Company: %s", r.DisplayName("Unknown")),
		IsAnonymous:        true,
		SharedWithNetwork:  false,
	}
}

//Personal.AI order the ending
