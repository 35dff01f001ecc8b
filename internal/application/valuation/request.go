package valuation

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/pkg/errors"
)

// Request is a decoded valuation request. Revenue is in millions.
type Request struct {
	Sector    string
	Geography string
	RevenueM  float64
}

// DecodeRequest parses a /predict body.
//
// An empty body, null, or any falsy JSON value ({} [] "" 0 false) is
// ErrNoJSONBody. Absent or null sector and geography default to Other and
// Global. Revenue may be a number or a numeric string; anything else,
// including NaN and infinities, becomes 0.
func DecodeRequest(body []byte) (Request, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Request{}, errors.ErrNoJSONBody
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Request{}, errors.InvalidParam("Failed to decode JSON object: " + err.Error())
	}
	if isFalsy(raw) {
		return Request{}, errors.ErrNoJSONBody
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return Request{}, errors.InvalidParam("request body must be a JSON object")
	}

	sector, err := stringField(obj, "sector", deal.SectorOther)
	if err != nil {
		return Request{}, err
	}
	geography, err := stringField(obj, "geography", deal.GeographyGlobal)
	if err != nil {
		return Request{}, err
	}

	return Request{
		Sector:    sector,
		Geography: geography,
		RevenueM:  CoerceRevenue(obj["revenue"]),
	}, nil
}

// CoerceRevenue converts a decoded JSON value to millions, leniently.
func CoerceRevenue(v interface{}) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case json.Number:
		f, _ = x.Float64()
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = p
	case bool:
		if x {
			f = 1
		}
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func stringField(obj map[string]interface{}, key, def string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.InvalidParam(key + " must be a string")
	}
	return s, nil
}

func isFalsy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case map[string]interface{}:
		return len(x) == 0
	case []interface{}:
		return len(x) == 0
	case string:
		return x == ""
	case float64:
		return x == 0
	case bool:
		return !x
	}
	return false
}

//Personal.AI order the ending
