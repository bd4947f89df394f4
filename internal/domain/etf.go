package domain

import (
	"fmt"
	"strings"
)

type AssetClass string

const (
	AssetClass_Equity         AssetClass = "Equity"
	AssetClass_Bonds          AssetClass = "Bonds"
	AssetClass_Treasuries     AssetClass = "Treasuries"
	AssetClass_ManagedFutures AssetClass = "ManagedFutures"
	AssetClass_Commodities    AssetClass = "Commodities"
	AssetClass_Gold           AssetClass = "Gold"
	AssetClass_RealEstate     AssetClass = "RealEstate"
	AssetClass_Bitcoin        AssetClass = "Bitcoin"
	AssetClass_Cash           AssetClass = "Cash"
)

type MarketRegion string

const (
	MarketRegion_US                     MarketRegion = "U.S."
	MarketRegion_InternationalDeveloped MarketRegion = "International Developed"
	MarketRegion_Emerging               MarketRegion = "Emerging"
	MarketRegion_Global                 MarketRegion = "Global"
)

type FactorStyle string

const (
	FactorStyle_Blend    FactorStyle = "Blend"
	FactorStyle_Value    FactorStyle = "Value"
	FactorStyle_Growth   FactorStyle = "Growth"
	FactorStyle_Momentum FactorStyle = "Momentum"
	FactorStyle_Quality  FactorStyle = "Quality"
)

type SizeFactor string

const (
	SizeFactor_LargeCap SizeFactor = "LargeCap"
	SizeFactor_MidCap   SizeFactor = "MidCap"
	SizeFactor_SmallCap SizeFactor = "SmallCap"
)

type LeverageType string

const (
	LeverageType_None             LeverageType = "None"
	LeverageType_Stacked          LeverageType = "Stacked"
	LeverageType_DailyReset       LeverageType = "Daily Reset"
	LeverageType_ExtendedDuration LeverageType = "Extended Duration"
)

func (l LeverageType) Valid() bool {
	switch l {
	case LeverageType_None, LeverageType_Stacked, LeverageType_DailyReset, LeverageType_ExtendedDuration:
		return true
	}
	return false
}

const exposureKeySeparator = "|"

// ExposureKey is written as assetClass|region|style|size,
// with the trailing parts left off when they're empty
type ExposureKey struct {
	AssetClass   AssetClass
	MarketRegion MarketRegion
	FactorStyle  FactorStyle
	SizeFactor   SizeFactor
}

func (k ExposureKey) String() string {
	parts := []string{
		string(k.AssetClass),
		string(k.MarketRegion),
		string(k.FactorStyle),
		string(k.SizeFactor),
	}
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, exposureKeySeparator)
}

func ParseExposureKey(s string) (ExposureKey, error) {
	parts := strings.Split(s, exposureKeySeparator)
	if len(parts) > 4 || parts[0] == "" {
		return ExposureKey{}, fmt.Errorf("invalid exposure key %q", s)
	}
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	return ExposureKey{
		AssetClass:   AssetClass(parts[0]),
		MarketRegion: MarketRegion(parts[1]),
		FactorStyle:  FactorStyle(parts[2]),
		SizeFactor:   SizeFactor(parts[3]),
	}, nil
}

func (k ExposureKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ExposureKey) UnmarshalText(b []byte) error {
	parsed, err := ParseExposureKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

type ETF struct {
	Ticker       string
	Name         string
	Exposures    map[ExposureKey]float64
	LeverageType LeverageType
}

// TotalExposure is the notional the fund controls
// per dollar invested
func (e ETF) TotalExposure() float64 {
	total := 0.0
	for _, amount := range e.Exposures {
		total += amount
	}
	return total
}

type PortfolioAnalysis struct {
	Exposures     map[ExposureKey]float64
	AssetClasses  map[AssetClass]float64
	TotalLeverage float64
	IsLevered     bool
}

type EquityBreakdown struct {
	USPercent                     float64
	ExUSPercent                   float64
	InternationalDevelopedPercent float64
	EmergingPercent               float64
}

type AssetClassExposure struct {
	AssetClass AssetClass
	Amount     float64
}
