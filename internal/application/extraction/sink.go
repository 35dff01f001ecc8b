package extraction

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/pkg/errors"
)

// MarshalRecords renders records as a two-space indented JSON array with
// non-ASCII and HTML characters left unescaped. A nil slice renders as [].
func MarshalRecords(records []deal.Record) ([]byte, error) {
	if records == nil {
		records = []deal.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "encode records")
	}
	return buf.Bytes(), nil
}

// WriteFile writes data to path, replacing any previous content. The close
// error is reported.
func WriteFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "create "+path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, errors.ErrCodeExportFailed, "close "+path)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "write "+path)
	}
	return nil
}

// SaveRecords is MarshalRecords followed by WriteFile.
func SaveRecords(path string, records []deal.Record) error {
	data, err := MarshalRecords(records)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// LoadRecords reads a file written by SaveRecords. The document is checked
// against the records schema before decoding.
func LoadRecords(path string) ([]deal.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeSourceNotFound, "records file not found").WithDetail(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeSourceUnreadable, "read "+path)
	}

	if err := ValidateDocument(data); err != nil {
		return nil, err
	}

	var records []deal.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "decode "+path)
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, errors.Newf(errors.ErrCodeValidation, "record %d: %v", i, err)
		}
	}
	return records, nil
}

//Personal.AI order the ending
