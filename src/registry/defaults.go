package registry

import "market-pulse/src/models"

// Definition couples an entry with its fallback parameters.
type Definition struct {
	Entry   models.MSymbolEntry
	Profile models.MFallbackProfile
}

// instrumentDefaults holds the synthetic parameters shared by an asset class.
var instrumentDefaults = map[models.MInstrument]models.MFallbackProfile{
	models.InstrumentIndex:     {VolatilityFactor: 0.02, DecimalPrecision: 2},
	models.InstrumentFX:        {VolatilityFactor: 0.005, DecimalPrecision: 3},
	models.InstrumentCrypto:    {VolatilityFactor: 0.05, DecimalPrecision: 2, BaseVolumeMagnitude: 10_000_000},
	models.InstrumentCommodity: {VolatilityFactor: 0.02, DecimalPrecision: 2, BaseVolumeMagnitude: 50_000_000},
	models.InstrumentEquity:    {VolatilityFactor: 0.02, DecimalPrecision: 2, BaseVolumeMagnitude: 50_000_000},
}

// GenericProfile is used for symbols the registry does not know.
var GenericProfile = models.MFallbackProfile{
	BaselineValue:       1000,
	VolatilityFactor:    0.02,
	DecimalPrecision:    2,
	BaseVolumeMagnitude: 10_000_000,
}

func def(code, name string, cat models.MCategory, providerID string, inst models.MInstrument, baseline, value, change float64) Definition {
	p := instrumentDefaults[inst]
	p.BaselineValue = baseline
	p.SnapshotValue = value
	p.SnapshotChange = change
	return Definition{
		Entry: models.MSymbolEntry{
			Code:       code,
			Name:       name,
			Category:   cat,
			ProviderID: providerID,
			Instrument: inst,
		},
		Profile: p,
	}
}

// DefaultDefinitions is the built-in symbol table.
func DefaultDefinitions() []Definition {
	defs := []Definition{
		def("IBOV", "Ibovespa", models.CategoryIndices, "^BVSP", models.InstrumentIndex, 149000, 149540, 760),
		def("SPX", "S&P 500", models.CategoryIndices, "^GSPC", models.InstrumentIndex, 5480, 5480, 25.50),
		def("DJI", "Dow Jones", models.CategoryIndices, "^DJI", models.InstrumentIndex, 39100, 39127, 150.25),
		def("IXIC", "NASDAQ", models.CategoryIndices, "^IXIC", models.InstrumentIndex, 17700, 17785, 120.75),
		def("FTSE", "FTSE 100", models.CategoryIndices, "^FTSE", models.InstrumentIndex, 8150, 8175, -45.30),
		def("N225", "Nikkei 225", models.CategoryIndices, "^N225", models.InstrumentIndex, 38500, 38630, 280.15),

		def("USD", "Dólar Americano", models.CategoryCurrencies, "BRL=X", models.InstrumentFX, 5.45, 5.45, 0.02),
		def("EUR", "Euro", models.CategoryCurrencies, "EURBRL=X", models.InstrumentFX, 5.95, 5.95, -0.01),
		def("GBP", "Libra Esterlina", models.CategoryCurrencies, "GBPBRL=X", models.InstrumentFX, 6.90, 6.92, 0.03),
		def("JPY", "Iene Japonês", models.CategoryCurrencies, "JPYBRL=X", models.InstrumentFX, 0.034, 0.034, 0.0001),
		def("BTC", "Bitcoin", models.CategoryCurrencies, "BTC-USD", models.InstrumentCrypto, 110000, 110320, 3880),
		def("ETH", "Ethereum", models.CategoryCurrencies, "ETH-USD", models.InstrumentCrypto, 3200, 3250, 85.50),

		def("WTI", "Petróleo WTI", models.CategoryCommodities, "CL=F", models.InstrumentCommodity, 78, 78.50, -1.20),
		def("BRENT", "Petróleo Brent", models.CategoryCommodities, "BZ=F", models.InstrumentCommodity, 82, 82.75, -1.05),
		def("GOLD", "Ouro", models.CategoryCommodities, "GC=F", models.InstrumentCommodity, 2340, 2345, 12.50),
		def("SILVER", "Prata", models.CategoryCommodities, "SI=F", models.InstrumentCommodity, 29, 29.40, 0.35),
		def("COPPER", "Cobre", models.CategoryCommodities, "HG=F", models.InstrumentCommodity, 4.40, 4.45, -0.08),
		def("SOY", "Soja", models.CategoryCommodities, "ZS=F", models.InstrumentCommodity, 1180, 1185, 5.25),

		def("PETR4", "Petrobras", models.CategoryStocks, "PETR4.SA", models.InstrumentEquity, 38, 38.50, 0.45),
		def("VALE3", "Vale", models.CategoryStocks, "VALE3.SA", models.InstrumentEquity, 68, 68.20, -0.80),
		def("AAPL", "Apple", models.CategoryStocks, "AAPL", models.InstrumentEquity, 214, 214.50, 3.25),
		def("MSFT", "Microsoft", models.CategoryStocks, "MSFT", models.InstrumentEquity, 440, 442, 5.75),
		def("TSLA", "Tesla", models.CategoryStocks, "TSLA", models.InstrumentEquity, 180, 182.30, -2.15),
		def("AMZN", "Amazon", models.CategoryStocks, "AMZN", models.InstrumentEquity, 182, 183.75, 1.85),
	}

	// Per-symbol overrides of the instrument defaults.
	for i := range defs {
		switch defs[i].Entry.Code {
		case "WTI", "BRENT":
			defs[i].Profile.VolatilityFactor = 0.03
		case "JPY":
			defs[i].Profile.DecimalPrecision = 4
		}
	}
	return defs
}
