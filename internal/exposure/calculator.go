package exposure

import (
	"sort"

	. "folio/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const dominantAssetClassCount = 3

type Calculator struct {
	catalog Catalog
	log     zerolog.Logger
}

func NewCalculator(catalog Catalog, log zerolog.Logger) *Calculator {
	return &Calculator{
		catalog: catalog,
		log:     log.With().Str("component", "exposure").Logger(),
	}
}

func (c *Calculator) Catalog() Catalog {
	return c.catalog
}

// holdingWeight is percentage/100, falling back to basis
// points when only those were sent
func holdingWeight(h Holding) float64 {
	if h.Percentage == 0 && h.BasisPoints != 0 {
		return h.BasisPoints.AsFraction()
	}
	return Percent(h.Percentage).AsFraction()
}

// AnalyzePortfolio weights every fund's exposures by its
// share of the portfolio. tickers missing from the catalog
// are skipped rather than failing the whole thing
func (c *Calculator) AnalyzePortfolio(p Portfolio) PortfolioAnalysis {
	exposures := map[ExposureKey]decimal.Decimal{}
	assetClasses := map[AssetClass]decimal.Decimal{}
	total := decimal.Zero

	for _, ticker := range p.Holdings.Tickers() {
		h := p.Holdings[ticker]
		if h.Disabled {
			continue
		}
		etf, ok := c.catalog.Lookup(ticker)
		if !ok {
			c.log.Warn().
				Str("ticker", ticker).
				Str("portfolio", p.Name).
				Msg("skipping holding missing from etf catalog")
			continue
		}

		weight := decimal.NewFromFloat(holdingWeight(h))

		for key, amount := range etf.Exposures {
			weighted := decimal.NewFromFloat(amount).Mul(weight)
			exposures[key] = exposures[key].Add(weighted)
			assetClasses[key.AssetClass] = assetClasses[key.AssetClass].Add(weighted)
			total = total.Add(weighted)
		}
	}

	out := PortfolioAnalysis{
		Exposures:     make(map[ExposureKey]float64, len(exposures)),
		AssetClasses:  make(map[AssetClass]float64, len(assetClasses)),
		TotalLeverage: total.InexactFloat64(),
	}
	for k, v := range exposures {
		out.Exposures[k] = v.InexactFloat64()
	}
	for k, v := range assetClasses {
		out.AssetClasses[k] = v.InexactFloat64()
	}
	out.IsLevered = total.GreaterThan(decimal.NewFromInt(1))

	return out
}

func (c *Calculator) CalculateEquityBreakdown(p Portfolio) *EquityBreakdown {
	return EquityBreakdownFromAnalysis(c.AnalyzePortfolio(p))
}

// EquityBreakdownFromAnalysis splits equity into U.S. and ex-U.S.
// (developed plus emerging). nil when there's no equity at all
func EquityBreakdownFromAnalysis(a PortfolioAnalysis) *EquityBreakdown {
	us := decimal.Zero
	developed := decimal.Zero
	emerging := decimal.Zero
	for key, amount := range a.Exposures {
		if key.AssetClass != AssetClass_Equity {
			continue
		}
		switch key.MarketRegion {
		case MarketRegion_US:
			us = us.Add(decimal.NewFromFloat(amount))
		case MarketRegion_InternationalDeveloped:
			developed = developed.Add(decimal.NewFromFloat(amount))
		case MarketRegion_Emerging:
			emerging = emerging.Add(decimal.NewFromFloat(amount))
		}
	}

	exUS := developed.Add(emerging)
	total := us.Add(exUS)
	if !total.IsPositive() {
		return nil
	}

	hundred := decimal.NewFromInt(100)
	pct := func(d decimal.Decimal) float64 {
		return d.Div(total).Mul(hundred).Round(2).InexactFloat64()
	}
	return &EquityBreakdown{
		USPercent:                     pct(us),
		ExUSPercent:                   pct(exUS),
		InternationalDevelopedPercent: pct(developed),
		EmergingPercent:               pct(emerging),
	}
}

// GetDominantAssetClasses returns the three largest asset
// classes by size of exposure, ties broken by name
func GetDominantAssetClasses(a PortfolioAnalysis) []AssetClassExposure {
	out := make([]AssetClassExposure, 0, len(a.AssetClasses))
	for assetClass, amount := range a.AssetClasses {
		out = append(out, AssetClassExposure{
			AssetClass: assetClass,
			Amount:     amount,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := abs(out[i].Amount), abs(out[j].Amount)
		if ai != aj {
			return ai > aj
		}
		return out[i].AssetClass < out[j].AssetClass
	})
	if len(out) > dominantAssetClassCount {
		out = out[:dominantAssetClassCount]
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
