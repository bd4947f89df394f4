package validation

import (
	"fmt"

	. "folio/internal/domain"
	"folio/internal/exposure"
	"folio/internal/precision"
)

const (
	concentrationThreshold      BasisPoints = 2500
	dailyResetLeverageThreshold             = 2.0
	minimumDiversificationShare             = 0.10
)

type Input struct {
	Portfolio Portfolio
	Analysis  PortfolioAnalysis
	Catalog   exposure.Catalog
}

// a rule looks at the portfolio and returns whatever it
// wants to flag. rules never change anything
type Rule func(in Input) []Warning

var DefaultRules = []Rule{
	ConcentrationRule,
	DailyResetLeverageRule,
	InternationalExposureRule,
	EmergingExposureRule,
	SmallCapExposureRule,
}

func ConcentrationRule(in Input) []Warning {
	out := []Warning{}
	for _, ticker := range in.Portfolio.Holdings.Tickers() {
		h := precision.EnsureBasisPoints(in.Portfolio.Holdings[ticker])
		if h.Disabled || h.BasisPoints <= concentrationThreshold {
			continue
		}
		out = append(out, Warning{
			Type:        WarningType_Concentration,
			Message:     fmt.Sprintf("%s is %.1f%% of the portfolio", ticker, h.BasisPoints.AsPercent()),
			Description: "Holding more than 25% in a single fund ties the portfolio to that fund's strategy and issuer.",
		})
	}
	return out
}

func DailyResetLeverageRule(in Input) []Warning {
	out := []Warning{}
	if in.Catalog == nil {
		return out
	}
	for _, ticker := range in.Portfolio.Holdings.Tickers() {
		h := precision.EnsureBasisPoints(in.Portfolio.Holdings[ticker])
		if h.Disabled || h.BasisPoints == 0 {
			continue
		}
		etf, ok := in.Catalog.Lookup(ticker)
		if !ok || etf.LeverageType != LeverageType_DailyReset {
			continue
		}
		leverage := etf.TotalExposure()
		if leverage <= dailyResetLeverageThreshold {
			continue
		}
		out = append(out, Warning{
			Type:        WarningType_Leverage,
			Message:     fmt.Sprintf("%s resets to %.1fx leverage daily", ticker, leverage),
			Description: "Daily-reset funds above 2x suffer volatility decay and can lose value in choppy markets even when the index ends flat.",
		})
	}
	return out
}

// equityShare is the fraction of equity exposure that
// matches, and false when there's no equity at all
func equityShare(a PortfolioAnalysis, match func(ExposureKey) bool) (float64, bool) {
	equity := a.AssetClasses[AssetClass_Equity]
	if equity <= 0 {
		return 0, false
	}
	matched := 0.0
	for k, amount := range a.Exposures {
		if k.AssetClass == AssetClass_Equity && match(k) {
			matched += amount
		}
	}
	return matched / equity, true
}

func diversificationRule(in Input, label, description string, match func(ExposureKey) bool) []Warning {
	share, ok := equityShare(in.Analysis, match)
	if !ok || share >= minimumDiversificationShare {
		return nil
	}
	return []Warning{{
		Type:        WarningType_Diversification,
		Message:     fmt.Sprintf("Only %.1f%% of equity exposure is %s", share*100, label),
		Description: description,
	}}
}

func InternationalExposureRule(in Input) []Warning {
	return diversificationRule(in,
		"international developed",
		"Less than 10% outside the U.S. leaves the portfolio dependent on a single market.",
		func(k ExposureKey) bool { return k.MarketRegion == MarketRegion_InternationalDeveloped },
	)
}

func EmergingExposureRule(in Input) []Warning {
	return diversificationRule(in,
		"emerging markets",
		"Less than 10% in emerging markets gives up a source of return that moves differently from developed markets.",
		func(k ExposureKey) bool { return k.MarketRegion == MarketRegion_Emerging },
	)
}

func SmallCapExposureRule(in Input) []Warning {
	return diversificationRule(in,
		"small cap",
		"Less than 10% in small caps leaves out the size premium.",
		func(k ExposureKey) bool { return k.SizeFactor == SizeFactor_SmallCap },
	)
}
