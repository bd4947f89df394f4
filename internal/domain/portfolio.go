package domain

import (
	"sort"
	"time"

	"folio/internal/util"
)

type Holding struct {
	Percentage        float64     `json:"percentage"`
	BasisPoints       BasisPoints `json:"basisPoints,omitempty"`
	DisplayPercentage float64     `json:"displayPercentage,omitempty"`
	Locked            bool        `json:"locked,omitempty"`
	Disabled          bool        `json:"disabled,omitempty"`
}

// Holdings is keyed by ticker
type Holdings map[string]Holding

func (h Holdings) Copy() Holdings {
	out := make(Holdings, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Tickers is sorted so every walk over the
// holdings happens in the same order
func (h Holdings) Tickers() []string {
	out := make([]string, 0, len(h))
	for ticker := range h {
		out = append(out, ticker)
	}
	sort.Strings(out)
	return out
}

type Portfolio struct {
	Name      string
	Holdings  Holdings
	CreatedAt *time.Time
}

func (p Portfolio) DeepCopy() Portfolio {
	out := Portfolio{
		Name:     p.Name,
		Holdings: p.Holdings.Copy(),
	}
	if p.CreatedAt != nil {
		out.CreatedAt = util.TimePtr(*p.CreatedAt)
	}
	return out
}

// HoldingEntry is one [ticker, holding] pair of
// the serialized form
type HoldingEntry struct {
	Ticker  string
	Holding Holding
}

type SerializedPortfolio struct {
	Name      string         `json:"name"`
	Holdings  []HoldingEntry `json:"holdings"`
	CreatedAt time.Time      `json:"createdAt"`
	EtfCount  *int           `json:"etfCount,omitempty"`
}

func (p Portfolio) Serialize() SerializedPortfolio {
	out := SerializedPortfolio{
		Name:     p.Name,
		Holdings: make([]HoldingEntry, 0, len(p.Holdings)),
	}
	for _, ticker := range p.Holdings.Tickers() {
		out.Holdings = append(out.Holdings, HoldingEntry{
			Ticker:  ticker,
			Holding: p.Holdings[ticker],
		})
	}
	if p.CreatedAt != nil {
		out.CreatedAt = *p.CreatedAt
	} else {
		out.CreatedAt = time.Now().UTC()
	}
	out.EtfCount = util.IntPtr(len(p.Holdings))
	return out
}

func (s SerializedPortfolio) ToPortfolio() Portfolio {
	holdings := make(Holdings, len(s.Holdings))
	for _, e := range s.Holdings {
		holdings[e.Ticker] = e.Holding
	}
	out := Portfolio{
		Name:     s.Name,
		Holdings: holdings,
	}
	if !s.CreatedAt.IsZero() {
		out.CreatedAt = util.TimePtr(s.CreatedAt)
	}
	return out
}
