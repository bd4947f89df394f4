package exposure

import (
	. "folio/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func newTestCalculator(t *testing.T) *Calculator {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewCalculator(catalog, zerolog.Nop())
}

func key(s string) ExposureKey {
	k, err := ParseExposureKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func TestAnalyzePortfolio(t *testing.T) {
	c := newTestCalculator(t)

	t.Run("stacked fund is levered", func(t *testing.T) {
		analysis := c.AnalyzePortfolio(Portfolio{
			Name:     "stacked",
			Holdings: Holdings{"RSST": {Percentage: 100}},
		})
		require.Equal(t, 2.0, analysis.TotalLeverage)
		require.True(t, analysis.IsLevered)
		require.Equal(t, "", cmp.Diff(map[ExposureKey]float64{
			key("Equity|U.S.|Blend|LargeCap"): 1.0,
			key("ManagedFutures"):             1.0,
		}, analysis.Exposures, approx))
		require.Equal(t, "", cmp.Diff(map[AssetClass]float64{
			AssetClass_Equity:         1.0,
			AssetClass_ManagedFutures: 1.0,
		}, analysis.AssetClasses))
	})

	t.Run("single fund reproduces raw exposures", func(t *testing.T) {
		for _, etf := range c.Catalog().All() {
			analysis := c.AnalyzePortfolio(Portfolio{
				Holdings: Holdings{etf.Ticker: {BasisPoints: FullAllocation}},
			})
			require.Equal(t, "", cmp.Diff(etf.Exposures, analysis.Exposures, approx), etf.Ticker)
		}
	})

	t.Run("weighted mix", func(t *testing.T) {
		analysis := c.AnalyzePortfolio(Portfolio{
			Holdings: Holdings{
				"VTI":  {Percentage: 60},
				"VXUS": {Percentage: 40},
			},
		})
		require.Equal(t, "", cmp.Diff(map[ExposureKey]float64{
			key("Equity|U.S.|Blend|LargeCap"):                    0.6,
			key("Equity|International Developed|Blend|LargeCap"): 0.3,
			key("Equity|Emerging|Blend|LargeCap"):                0.1,
		}, analysis.Exposures, approx))
		require.Equal(t, 1.0, analysis.TotalLeverage)
		require.False(t, analysis.IsLevered)
	})

	t.Run("weight is the percentage over 100", func(t *testing.T) {
		analysis := c.AnalyzePortfolio(Portfolio{
			Holdings: Holdings{"VTI": {Percentage: 33.333}},
		})
		require.InDelta(t, 0.33333, analysis.TotalLeverage, 1e-12)
		require.False(t, analysis.IsLevered)
	})

	t.Run("unknown and disabled holdings are skipped", func(t *testing.T) {
		analysis := c.AnalyzePortfolio(Portfolio{
			Holdings: Holdings{
				"VTI":     {Percentage: 50},
				"NOTREAL": {Percentage: 50},
				"GLD":     {Percentage: 20, Disabled: true},
			},
		})
		require.Equal(t, 0.5, analysis.TotalLeverage)
		require.NotContains(t, analysis.AssetClasses, AssetClass_Gold)
	})

	t.Run("empty", func(t *testing.T) {
		analysis := c.AnalyzePortfolio(Portfolio{Holdings: Holdings{}})
		require.Equal(t, 0.0, analysis.TotalLeverage)
		require.False(t, analysis.IsLevered)
	})
}

func TestCalculateEquityBreakdown(t *testing.T) {
	c := newTestCalculator(t)

	breakdown := c.CalculateEquityBreakdown(Portfolio{
		Holdings: Holdings{
			"VTI":  {Percentage: 60},
			"VXUS": {Percentage: 40},
		},
	})
	require.NotNil(t, breakdown)
	require.Equal(t, EquityBreakdown{
		USPercent:                     60,
		ExUSPercent:                   40,
		InternationalDevelopedPercent: 30,
		EmergingPercent:               10,
	}, *breakdown)

	require.Nil(t, c.CalculateEquityBreakdown(Portfolio{
		Holdings: Holdings{"BND": {Percentage: 100}},
	}))
}

func TestGetDominantAssetClasses(t *testing.T) {
	c := newTestCalculator(t)

	out := GetDominantAssetClasses(c.AnalyzePortfolio(Portfolio{
		Holdings: Holdings{
			"VTI":  {Percentage: 50},
			"BND":  {Percentage: 25},
			"DBMF": {Percentage: 15},
			"GLD":  {Percentage: 10},
		},
	}))
	require.Equal(t, []AssetClassExposure{
		{AssetClass: AssetClass_Equity, Amount: 0.5},
		{AssetClass: AssetClass_Bonds, Amount: 0.25},
		{AssetClass: AssetClass_ManagedFutures, Amount: 0.15},
	}, out)

	out = GetDominantAssetClasses(c.AnalyzePortfolio(Portfolio{
		Holdings: Holdings{"RSSB": {Percentage: 100}},
	}))
	require.Equal(t, []AssetClass{AssetClass_Equity, AssetClass_Treasuries}, []AssetClass{out[0].AssetClass, out[1].AssetClass})
}
