package domain

import (
	"github.com/montanaflynn/stats"
)

// typed numbers that carry the unit they are in.
// allocations are held as integer basis points so
// totals can be compared exactly, percentages only
// show up at the edges

type BasisPoints int

const FullAllocation BasisPoints = 10000

func (b BasisPoints) AsPercent() float64 {
	return float64(b) / 100
}

func (b BasisPoints) AsFraction() float64 {
	return float64(b) / float64(FullAllocation)
}

type Percent float64

func (p Percent) AsFraction() float64 {
	return float64(p) / 100
}

type Hours float64
type HoursData []Hours

func (hd HoursData) ToStatsData() stats.Float64Data {
	out := make(stats.Float64Data, len(hd))
	for i, h := range hd {
		out[i] = float64(h)
	}
	return out
}
