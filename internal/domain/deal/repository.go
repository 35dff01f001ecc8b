package deal

import "context"

// OutcomeRepository persists outcome rows.
type OutcomeRepository interface {
	// Insert stores one row and returns its generated id.
	Insert(ctx context.Context, o Outcome) (int64, error)
}

//Personal.AI order the ending
