package valuation

// Table defaults.
const (
	DefaultSectorMultiple      = 1.5
	DefaultGeographyAdjustment = 1.0
	DefaultConfidence          = 0.70
)

// SectorMultiples holds the baseline revenue multiple per sector alias.
var SectorMultiples = NewTable("sector_multiple", DefaultSectorMultiple,
	Entry{"Technology", 4.5},
	Entry{"Software", 4.5},
	Entry{"SaaS", 4.5},
	Entry{"AI", 4.5},
	Entry{"Gaming", 5.0},
	Entry{"Gaming/Entertainment", 5.0},
	Entry{"ESports", 5.0},
	Entry{"Cannabis", 3.0},
	Entry{"Cannabis/Healthcare", 3.0},
	Entry{"Healthcare", 3.0},
	Entry{"Mining", 1.2},
	Entry{"Mining/Resources", 1.2},
	Entry{"Gold", 1.2},
	Entry{"Energy", 1.5},
	Entry{"Oil", 1.5},
	Entry{"Gas", 1.5},
	Entry{"Construction", 0.7},
	Entry{"Construction/Real Estate", 0.7},
	Entry{"Real Estate", 0.7},
	Entry{"Trading", 0.3},
	Entry{"Trading/Commodities", 0.3},
	Entry{"Commodities", 0.3},
	Entry{"Manufacturing", 1.0},
)

// GeographyAdjustments holds the regional premium/discount multiplier.
var GeographyAdjustments = NewTable("geography_adjustment", DefaultGeographyAdjustment,
	Entry{"United States", 1.2},
	Entry{"USA", 1.2},
	Entry{"US", 1.2},
	Entry{"North America", 1.2},
	Entry{"Canada", 1.2},
	Entry{"Sweden", 1.1},
	Entry{"Norway", 1.1},
	Entry{"Denmark", 1.1},
	Entry{"Europe", 1.0},
	Entry{"UK", 1.0},
	Entry{"Germany", 1.0},
	Entry{"France", 1.0},
	Entry{"Global", 1.0},
	Entry{"Peru", 0.7},
	Entry{"Brazil", 0.7},
	Entry{"South America", 0.7},
	Entry{"Ghana", 0.7},
	Entry{"Africa", 0.7},
)

// SectorConfidence holds the model confidence per sector alias. It is sparser
// than SectorMultiples.
var SectorConfidence = NewTable("sector_confidence", DefaultConfidence,
	Entry{"Technology", 0.85},
	Entry{"Software", 0.85},
	Entry{"SaaS", 0.85},
	Entry{"Gaming", 0.80},
	Entry{"Gaming/Entertainment", 0.80},
	Entry{"Cannabis", 0.75},
	Entry{"Healthcare", 0.75},
	Entry{"Mining", 0.70},
	Entry{"Mining/Resources", 0.70},
	Entry{"Energy", 0.75},
	Entry{"Construction", 0.65},
	Entry{"Construction/Real Estate", 0.65},
	Entry{"Real Estate", 0.65},
	Entry{"Trading", 0.60},
	Entry{"Trading/Commodities", 0.60},
	Entry{"Manufacturing", 0.70},
)

// SizeAdjustment maps revenue (millions) to a size multiplier. Each bracket
// includes its lower bound.
//
//	revenue ≤ 0        → 1.0  (no data)
//	0 < revenue < 10   → 1.2  small company premium
//	10 ≤ revenue < 50  → 1.0
//	50 ≤ revenue < 250 → 0.9
//	revenue ≥ 250      → 0.7
func SizeAdjustment(revenue float64) float64 {
	switch {
	case revenue <= 0:
		return 1.0
	case revenue < 10:
		return 1.2
	case revenue < 50:
		return 1.0
	case revenue < 250:
		return 0.9
	default:
		return 0.7
	}
}

//Personal.AI order the ending
