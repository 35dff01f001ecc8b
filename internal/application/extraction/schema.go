package extraction

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/turtacn/DealLens/pkg/errors"
)

// recordsSchema describes the file written by SaveRecords.
const recordsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["page", "sector", "geography", "notes_snippet"],
    "properties": {
      "page":           {"type": "integer", "minimum": 0},
      "company_name":   {"type": ["string", "null"]},
      "revenue_m":      {"type": ["number", "null"]},
      "funding_need_m": {"type": ["string", "null"]},
      "sector":         {"type": "string", "minLength": 1},
      "geography":      {"type": "string", "minLength": 1},
      "ebitda_info":    {"type": ["string", "null"]},
      "notes_snippet":  {"type": "string"}
    }
  }
}`

var recordsSchemaLoader = gojsonschema.NewStringLoader(recordsSchema)

// ValidateDocument checks data against the records schema.
func ValidateDocument(data []byte) error {
	result, err := gojsonschema.Validate(recordsSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "records document is not valid JSON")
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return errors.New(errors.ErrCodeValidation, "records document does not match schema").
			WithDetail(strings.Join(msgs, "; "))
	}
	return nil
}

//Personal.AI order the ending
