// Package repositories holds the PostgreSQL implementations of domain
// repository interfaces.
package repositories

import (
	"context"
	"time"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/internal/infrastructure/database/postgres"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/pkg/errors"
)

const insertOutcomeSQL = `
	INSERT INTO deal_outcomes (
		organization_id, sector, target_geography, deal_type,
		first_contact_date, target_revenue_range, deal_outcome,
		what_went_well, is_anonymous, shared_with_network
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	RETURNING id`

// OutcomeRepository is the PostgreSQL deal.OutcomeRepository.
type OutcomeRepository struct {
	conn   *postgres.Connection
	logger logging.Logger
}

var _ deal.OutcomeRepository = (*OutcomeRepository)(nil)

// NewOutcomeRepository constructs an OutcomeRepository.
func NewOutcomeRepository(conn *postgres.Connection, logger logging.Logger) *OutcomeRepository {
	return &OutcomeRepository{conn: conn, logger: logger.Named("outcome_repo")}
}

// Insert writes one row and returns the generated id.
func (r *OutcomeRepository) Insert(ctx context.Context, o deal.Outcome) (int64, error) {
	if o.OrganizationID == "" {
		return 0, errors.InvalidParam("organization_id is required")
	}
	contact, err := time.Parse(time.DateOnly, o.FirstContactDate)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeValidation, "first_contact_date must be YYYY-MM-DD")
	}

	var id int64
	err = r.conn.DB().QueryRowContext(ctx, insertOutcomeSQL,
		o.OrganizationID, o.Sector, o.TargetGeography, o.DealType,
		contact, o.TargetRevenueRange, o.DealOutcome,
		o.WhatWentWell, o.IsAnonymous, o.SharedWithNetwork,
	).Scan(&id)
	if err != nil {
		r.logger.Error("insert deal outcome failed", logging.Err(err), logging.String("sector", o.Sector))
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert deal outcome")
	}

	r.logger.Debug("inserted deal outcome", logging.Int64("id", id), logging.String("sector", o.Sector))
	return id, nil
}

//Personal.AI order the ending
