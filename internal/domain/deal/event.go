package deal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/DealLens/pkg/errors"
)

// Event is the envelope published once per extracted record.
type Event struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	ExtractedAt time.Time `json:"extracted_at"`
	Record      Record    `json:"record"`
}

// NewRunID returns a fresh extraction run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// NewEvent wraps r for publication.
func NewEvent(runID, source string, at time.Time, r Record) Event {
	return Event{RunID: runID, Source: source, ExtractedAt: at.UTC(), Record: r}
}

// Marshal encodes the event as JSON.
func (e Event) Marshal() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "encode deal event")
	}
	return b, nil
}

// UnmarshalEvent decodes and validates an event payload.
func UnmarshalEvent(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, errors.Wrap(err, errors.ErrCodeSerialization, "decode deal event")
	}
	if _, err := uuid.Parse(e.RunID); err != nil {
		return Event{}, errors.New(errors.ErrCodeValidation, "deal event has invalid run_id").WithCause(err)
	}
	if err := e.Record.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

//Personal.AI order the ending
