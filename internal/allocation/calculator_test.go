package allocation

import (
	. "folio/internal/domain"
	"folio/internal/precision"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func bps(h Holdings) map[string]BasisPoints {
	out := map[string]BasisPoints{}
	for ticker, holding := range h {
		out[ticker] = holding.BasisPoints
	}
	return out
}

func TestUpdateAllocation(t *testing.T) {
	t.Run("proportional", func(t *testing.T) {
		out, err := UpdateAllocation(Holdings{
			"VTI": {BasisPoints: 6000},
			"BND": {BasisPoints: 3000},
			"GLD": {BasisPoints: 1000},
		}, "VTI", 70)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(map[string]BasisPoints{
			"VTI": 7000,
			"BND": 2250,
			"GLD": 750,
		}, bps(out)))
		require.Equal(t, 22.5, out["BND"].Percentage)
		require.Equal(t, 7.5, out["GLD"].DisplayPercentage)
	})

	t.Run("locked holdings keep their share", func(t *testing.T) {
		in := Holdings{
			"VTI": {BasisPoints: 5000},
			"BND": {BasisPoints: 3000, Locked: true},
			"GLD": {BasisPoints: 2000},
		}
		out, err := UpdateAllocation(in, "VTI", 60)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(map[string]BasisPoints{
			"VTI": 6000,
			"BND": 3000,
			"GLD": 1000,
		}, bps(out)))

		out, err = UpdateAllocation(in, "VTI", 80)
		require.ErrorIs(t, err, ErrInsufficientAllocation)
		require.Equal(t, in, out)

		_, err = UpdateAllocation(in, "BND", 10)
		require.ErrorIs(t, err, ErrHoldingLocked)
	})

	t.Run("disabled target", func(t *testing.T) {
		_, err := UpdateAllocation(Holdings{
			"VTI": {BasisPoints: 10000},
			"BND": {Disabled: true},
		}, "BND", 10)
		require.ErrorIs(t, err, ErrHoldingDisabled)
	})

	t.Run("unknown ticker", func(t *testing.T) {
		_, err := UpdateAllocation(Holdings{"VTI": {BasisPoints: 10000}}, "QQQ", 10)
		require.ErrorIs(t, err, ErrUnknownHolding)
	})

	t.Run("nothing to absorb the change", func(t *testing.T) {
		in := Holdings{
			"VTI": {BasisPoints: 5000},
			"BND": {BasisPoints: 5000, Locked: true},
		}
		_, err := UpdateAllocation(in, "VTI", 40)
		require.ErrorIs(t, err, ErrNoAdjustableHoldings)

		out, err := UpdateAllocation(in, "VTI", 50)
		require.NoError(t, err)
		require.True(t, precision.IsPortfolioPrecise(out))
	})

	t.Run("equal split when others are empty", func(t *testing.T) {
		out, err := UpdateAllocation(Holdings{
			"VTI": {BasisPoints: 10000},
			"BND": {},
			"GLD": {},
		}, "VTI", 40)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(map[string]BasisPoints{
			"VTI": 4000,
			"BND": 3000,
			"GLD": 3000,
		}, bps(out)))
	})

	t.Run("does not modify input", func(t *testing.T) {
		in := Holdings{
			"VTI": {BasisPoints: 6000},
			"BND": {BasisPoints: 4000},
		}
		_, err := UpdateAllocation(in, "VTI", 10)
		require.NoError(t, err)
		require.Equal(t, BasisPoints(6000), in["VTI"].BasisPoints)
	})

	t.Run("random sequences stay at 100%", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		tickers := []string{"AVUV", "BND", "DBMF", "GLD", "RSST", "VTI", "VXUS"}
		holdings := Holdings{
			"AVUV": {Percentage: 14.28},
			"BND":  {Percentage: 14.28},
			"DBMF": {Percentage: 14.28, Locked: true},
			"GLD":  {Percentage: 14.28},
			"RSST": {Percentage: 14.28},
			"VTI":  {Percentage: 14.28, Disabled: true},
			"VXUS": {Percentage: 28.6},
		}
		holdings = precision.Normalize(holdings)
		require.True(t, precision.IsPortfolioPrecise(holdings))

		for i := 0; i < 500; i++ {
			ticker := tickers[r.Intn(len(tickers))]
			pct := r.Float64() * 100
			next, err := UpdateAllocation(holdings, ticker, pct)
			if err == nil {
				holdings = next
			}
			require.True(t, precision.IsPortfolioPrecise(holdings), "step %d: %v", i, bps(holdings))
			for _, h := range holdings {
				require.GreaterOrEqual(t, h.BasisPoints, BasisPoints(0))
			}
		}
	})
}

func TestRedistributeAmongAvailable(t *testing.T) {
	t.Run("add on top", func(t *testing.T) {
		out := RedistributeAmongAvailable(Holdings{
			"A": {BasisPoints: 1000},
			"B": {BasisPoints: 3000},
		}, []string{"B", "A"}, 2000, false)
		require.Equal(t, "", cmp.Diff(map[string]BasisPoints{
			"A": 1500,
			"B": 4500,
		}, bps(out)))
	})

	t.Run("last takes remainder", func(t *testing.T) {
		out := RedistributeAmongAvailable(Holdings{
			"A": {},
			"B": {},
			"C": {},
		}, []string{"A", "B", "C"}, 10000, true)
		require.Equal(t, "", cmp.Diff(map[string]BasisPoints{
			"A": 3333,
			"B": 3333,
			"C": 3334,
		}, bps(out)))
	})

	t.Run("no tickers", func(t *testing.T) {
		in := Holdings{"A": {BasisPoints: 10000}}
		require.Equal(t, in, RedistributeAmongAvailable(in, nil, 500, true))
	})
}

func TestRedistributeAfterRemoval(t *testing.T) {
	t.Run("proportional", func(t *testing.T) {
		out, err := RedistributeAfterRemoval(Holdings{
			"VTI": {BasisPoints: 5000},
			"BND": {BasisPoints: 3000},
			"GLD": {BasisPoints: 2000},
		}, "VTI")
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(map[string]BasisPoints{
			"BND": 6000,
			"GLD": 4000,
		}, bps(out)))
	})

	t.Run("unlocks one when everything is locked", func(t *testing.T) {
		out, err := RedistributeAfterRemoval(Holdings{
			"VTI": {BasisPoints: 5000},
			"BND": {BasisPoints: 3000, Locked: true},
			"GLD": {BasisPoints: 2000, Locked: true},
		}, "VTI")
		require.NoError(t, err)
		require.Equal(t, BasisPoints(8000), out["BND"].BasisPoints)
		require.False(t, out["BND"].Locked)
		require.True(t, out["GLD"].Locked)
		require.True(t, precision.IsPortfolioPrecise(out))
	})

	t.Run("disabled holdings get nothing", func(t *testing.T) {
		out, err := RedistributeAfterRemoval(Holdings{
			"VTI": {BasisPoints: 4000},
			"BND": {BasisPoints: 6000},
			"GLD": {Disabled: true},
		}, "VTI")
		require.NoError(t, err)
		require.Equal(t, BasisPoints(0), out["GLD"].BasisPoints)
		require.True(t, precision.IsPortfolioPrecise(out))
	})

	t.Run("last holding", func(t *testing.T) {
		out, err := RedistributeAfterRemoval(Holdings{"VTI": {BasisPoints: 10000}}, "VTI")
		require.NoError(t, err)
		require.Empty(t, out)
		require.Equal(t, BasisPoints(0), precision.TotalBasisPoints(out))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := RedistributeAfterRemoval(Holdings{}, "VTI")
		require.ErrorIs(t, err, ErrUnknownHolding)
	})
}

func TestAddHolding(t *testing.T) {
	out, err := AddHolding(Holdings{}, "VTI", 25)
	require.NoError(t, err)
	require.Equal(t, FullAllocation, out["VTI"].BasisPoints)

	out, err = AddHolding(out, "BND", 40)
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff(map[string]BasisPoints{
		"VTI": 6000,
		"BND": 4000,
	}, bps(out)))

	out, err = AddHolding(out, "GLD", 0)
	require.NoError(t, err)
	require.Equal(t, BasisPoints(0), out["GLD"].BasisPoints)
	require.True(t, precision.IsPortfolioPrecise(out))

	_, err = AddHolding(out, "GLD", 10)
	require.ErrorIs(t, err, ErrHoldingExists)
}

func TestToggleDisable(t *testing.T) {
	out, err := ToggleDisable(Holdings{
		"VTI": {BasisPoints: 6000},
		"BND": {BasisPoints: 4000},
	}, "BND")
	require.NoError(t, err)
	require.True(t, out["BND"].Disabled)
	require.Equal(t, FullAllocation, out["VTI"].BasisPoints)

	out, err = ToggleDisable(out, "BND")
	require.NoError(t, err)
	require.False(t, out["BND"].Disabled)
	require.Equal(t, BasisPoints(0), out["BND"].BasisPoints)
	require.True(t, precision.IsPortfolioPrecise(out))

	t.Run("only holding", func(t *testing.T) {
		out, err := ToggleDisable(Holdings{"VTI": {BasisPoints: 10000}}, "VTI")
		require.NoError(t, err)
		require.Equal(t, BasisPoints(0), precision.TotalBasisPoints(out))

		out, err = ToggleDisable(out, "VTI")
		require.NoError(t, err)
		require.Equal(t, FullAllocation, out["VTI"].BasisPoints)
	})
}

func TestToggleLock(t *testing.T) {
	out, err := ToggleLock(Holdings{"VTI": {BasisPoints: 10000}}, "VTI")
	require.NoError(t, err)
	require.True(t, out["VTI"].Locked)

	_, err = ToggleLock(out, "BND")
	require.ErrorIs(t, err, ErrUnknownHolding)
}

func TestEqualWeight(t *testing.T) {
	out, err := EqualWeight(Holdings{
		"A": {BasisPoints: 7000},
		"B": {BasisPoints: 1000},
		"C": {BasisPoints: 1000},
		"D": {BasisPoints: 1000, Locked: true},
	})
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff(map[string]BasisPoints{
		"A": 3000,
		"B": 3000,
		"C": 3000,
		"D": 1000,
	}, bps(out)))

	_, err = EqualWeight(Holdings{"A": {BasisPoints: 10000, Locked: true}})
	require.ErrorIs(t, err, ErrNoAdjustableHoldings)
}
