package models

// -----------------------------------------------------------------------------
// Categories
// -----------------------------------------------------------------------------

type MCategory string

const (
	CategoryIndices     MCategory = "indices"
	CategoryCurrencies  MCategory = "currencies"
	CategoryCommodities MCategory = "commodities"
	CategoryStocks      MCategory = "stocks"
)

// Categories lists every category in presentation order.
var Categories = []MCategory{
	CategoryIndices,
	CategoryCurrencies,
	CategoryCommodities,
	CategoryStocks,
}

// ParseCategory returns the category matching name and whether it is known.
func ParseCategory(name string) (MCategory, bool) {
	for _, c := range Categories {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// -----------------------------------------------------------------------------
// Instruments
// -----------------------------------------------------------------------------

// MInstrument is the asset class of a symbol. It drives synthetic volatility,
// volume and precision and is independent from the display category (crypto is
// listed under currencies).
type MInstrument string

const (
	InstrumentIndex     MInstrument = "index"
	InstrumentFX        MInstrument = "fx"
	InstrumentCrypto    MInstrument = "crypto"
	InstrumentCommodity MInstrument = "commodity"
	InstrumentEquity    MInstrument = "equity"
)

// -----------------------------------------------------------------------------
// Registry entries
// -----------------------------------------------------------------------------

type MSymbolEntry struct {
	Code       string      `json:"symbol"`
	Name       string      `json:"name"`
	Category   MCategory   `json:"category"`
	ProviderID string      `json:"providerId"`
	Instrument MInstrument `json:"instrument"`
}

// MFallbackProfile holds the static parameters used to synthesize data for a
// symbol when the provider is unavailable.
type MFallbackProfile struct {
	BaselineValue       float64 `json:"baselineValue"`
	VolatilityFactor    float64 `json:"volatilityFactor"`
	DecimalPrecision    int     `json:"decimalPrecision"`
	BaseVolumeMagnitude float64 `json:"baseVolumeMagnitude"`
	SnapshotValue       float64 `json:"snapshotValue"`
	SnapshotChange      float64 `json:"snapshotChange"`
}
