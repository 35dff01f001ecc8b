package valuation

import "fmt"

// ─────────────────────────────────────────────────────────────────────────────
// Model
// ─────────────────────────────────────────────────────────────────────────────

// Range spread around the final multiple.
const (
	RangeLowFactor  = 0.75
	RangeHighFactor = 1.25
)

// Valuation is the unrounded output of Score. Use Prediction for output.
type Valuation struct {
	Sector    string
	Geography string
	Revenue   float64 // millions

	BaseMultiple        float64
	GeographyAdjustment float64
	SizeAdjustment      float64

	Multiple     float64
	MultipleLow  float64
	MultipleHigh float64

	EnterpriseValue float64 // millions
	EVLow           float64
	EVHigh          float64

	Confidence float64
	KeyDrivers []string
}

// Range is a low/high pair.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Prediction is the rounded, presentation form of a Valuation.
type Prediction struct {
	RevenueMultiple  float64 `json:"revenue_multiple"`
	MultipleRange    Range   `json:"multiple_range"`
	EnterpriseValueM float64 `json:"enterprise_value_m"`
	EVRange          Range   `json:"ev_range"`
	Confidence       float64 `json:"confidence"`
}

// Prediction rounds multiples and confidence to 2 places, EV to 1.
func (v Valuation) Prediction() Prediction {
	return Prediction{
		RevenueMultiple:  Round(v.Multiple, 2),
		MultipleRange:    Range{Low: Round(v.MultipleLow, 2), High: Round(v.MultipleHigh, 2)},
		EnterpriseValueM: Round(v.EnterpriseValue, 1),
		EVRange:          Range{Low: Round(v.EVLow, 1), High: Round(v.EVHigh, 1)},
		Confidence:       Round(v.Confidence, 2),
	}
}

// Scorer computes valuations.
type Scorer interface {
	Score(sector, geography string, revenue float64) Valuation
}

// Engine scores against a set of tables. The zero value is not usable; use
// NewEngine or Default.
type Engine struct {
	sectors     *Table
	geographies *Table
	confidence  *Table
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithSectorTable replaces the sector multiple table.
func WithSectorTable(t *Table) EngineOption { return func(e *Engine) { e.sectors = t } }

// WithGeographyTable replaces the geography adjustment table.
func WithGeographyTable(t *Table) EngineOption { return func(e *Engine) { e.geographies = t } }

// WithConfidenceTable replaces the confidence table.
func WithConfidenceTable(t *Table) EngineOption { return func(e *Engine) { e.confidence = t } }

// NewEngine builds an Engine over the built-in tables.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		sectors:     SectorMultiples,
		geographies: GeographyAdjustments,
		confidence:  SectorConfidence,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Default returns the engine over the built-in tables.
func Default() *Engine { return defaultEngine }

// Score is Default().Score.
func Score(sector, geography string, revenue float64) Valuation {
	return defaultEngine.Score(sector, geography, revenue)
}

// Score is a pure, total function:
//
//	final = base(sector) × geo(geography) × size(revenue)
//	range = [final × 0.75, final × 1.25]
//	EV    = final × revenue, EV range = range × revenue
//
// Negative revenue is carried through and produces a negative EV.
func (e *Engine) Score(sector, geography string, revenue float64) Valuation {
	base := e.sectors.Resolve(sector)
	geo := e.geographies.Resolve(geography)
	size := SizeAdjustment(revenue)
	final := base * geo * size

	v := Valuation{
		Sector:              sector,
		Geography:           geography,
		Revenue:             revenue,
		BaseMultiple:        base,
		GeographyAdjustment: geo,
		SizeAdjustment:      size,
		Multiple:            final,
		MultipleLow:         final * RangeLowFactor,
		MultipleHigh:        final * RangeHighFactor,
		EnterpriseValue:     final * revenue,
		Confidence:          e.confidence.Resolve(sector),
	}
	v.EVLow = v.MultipleLow * revenue
	v.EVHigh = v.MultipleHigh * revenue
	v.KeyDrivers = keyDrivers(v)
	return v
}

// keyDrivers explains the arithmetic, in order: baseline, geography (only when
// not neutral), size (only when not neutral), final multiple.
func keyDrivers(v Valuation) []string {
	drivers := make([]string, 0, 4)
	drivers = append(drivers, fmt.Sprintf("%s sector baseline: %sx", v.Sector, FormatNumber(v.BaseMultiple)))

	switch {
	case v.GeographyAdjustment > 1:
		drivers = append(drivers, fmt.Sprintf("%s market premium: +%d%%", v.Geography, percent(v.GeographyAdjustment)))
	case v.GeographyAdjustment < 1:
		drivers = append(drivers, fmt.Sprintf("%s market discount: -%d%%", v.Geography, percent(v.GeographyAdjustment)))
	}

	switch {
	case v.SizeAdjustment > 1:
		drivers = append(drivers, fmt.Sprintf("Small company premium: +%d%%", percent(v.SizeAdjustment)))
	case v.SizeAdjustment < 1:
		drivers = append(drivers, fmt.Sprintf("Size adjustment: -%d%%", percent(v.SizeAdjustment)))
	}

	drivers = append(drivers, fmt.Sprintf("Final multiple: %sx", FormatNumber(Round(v.Multiple, 2))))
	return drivers
}

//Personal.AI order the ending
