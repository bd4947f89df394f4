package precision

import (
	"math"

	. "folio/internal/domain"

	"github.com/shopspring/decimal"
)

func PercentToBasisPoints(percentage float64) BasisPoints {
	return BasisPoints(math.Round(percentage * 100))
}

func BasisPointsToPercent(bp BasisPoints) float64 {
	return bp.AsPercent()
}

func ClampBasisPoints(bp BasisPoints) BasisPoints {
	if bp < 0 {
		return 0
	}
	if bp > FullAllocation {
		return FullAllocation
	}
	return bp
}

func displayPercent(bp BasisPoints) float64 {
	return decimal.NewFromInt(int64(bp)).Div(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}

// EnsureBasisPoints treats zero basis points on a
// nonzero percentage as missing and derives it.
// anything out of range gets clamped
func EnsureBasisPoints(h Holding) Holding {
	bp := h.BasisPoints
	if bp == 0 && h.Percentage != 0 {
		bp = PercentToBasisPoints(h.Percentage)
	}
	return withBasisPoints(h, bp)
}

func withBasisPoints(h Holding, bp BasisPoints) Holding {
	bp = ClampBasisPoints(bp)
	h.BasisPoints = bp
	h.Percentage = bp.AsPercent()
	h.DisplayPercentage = displayPercent(bp)
	return h
}

// SetBasisPoints returns h carrying exactly bp
func SetBasisPoints(h Holding, bp BasisPoints) Holding {
	return withBasisPoints(h, bp)
}

func TotalBasisPoints(holdings Holdings) BasisPoints {
	total := BasisPoints(0)
	for _, h := range holdings {
		if h.Disabled {
			continue
		}
		total += h.BasisPoints
	}
	return total
}

func IsPortfolioPrecise(holdings Holdings) bool {
	return TotalBasisPoints(holdings) == FullAllocation
}

// Fill derives missing basis points and zeroes disabled
// holdings. totals are left as they came in
func Fill(holdings Holdings) Holdings {
	out := make(Holdings, len(holdings))
	for ticker, h := range holdings {
		h = EnsureBasisPoints(h)
		if h.Disabled {
			h = withBasisPoints(h, 0)
		}
		out[ticker] = h
	}
	return out
}

// Normalize fills in basis points for every holding and
// rescales the enabled ones so they add up to exactly 100%.
// the last unlocked holding picks up the rounding remainder
func Normalize(holdings Holdings) Holdings {
	out := Fill(holdings)

	total := TotalBasisPoints(out)
	if total == 0 || total == FullAllocation {
		return out
	}

	tickers := []string{}
	for _, ticker := range out.Tickers() {
		if !out[ticker].Disabled {
			tickers = append(tickers, ticker)
		}
	}

	assigned := BasisPoints(0)
	last := ""
	for _, ticker := range tickers {
		if !out[ticker].Locked {
			last = ticker
		}
	}
	if last == "" {
		last = tickers[len(tickers)-1]
	}

	for _, ticker := range tickers {
		if ticker == last {
			continue
		}
		h := out[ticker]
		scaled := BasisPoints(math.Floor(float64(h.BasisPoints) * float64(FullAllocation) / float64(total)))
		out[ticker] = withBasisPoints(h, scaled)
		assigned += scaled
	}
	out[last] = withBasisPoints(out[last], FullAllocation-assigned)

	return out
}
