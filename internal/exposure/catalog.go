package exposure

import (
	_ "embed"
	"fmt"
	"sort"

	"folio/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYaml []byte

type catalogFile struct {
	Etfs []struct {
		Ticker       string             `yaml:"ticker"`
		Name         string             `yaml:"name"`
		LeverageType string             `yaml:"leverageType"`
		Exposures    map[string]float64 `yaml:"exposures"`
	} `yaml:"etfs"`
}

type Catalog interface {
	Lookup(ticker string) (*domain.ETF, bool)
	All() []domain.ETF
}

type catalogHandler struct {
	etfs map[string]domain.ETF
}

func NewCatalog(etfs []domain.ETF) Catalog {
	m := make(map[string]domain.ETF, len(etfs))
	for _, e := range etfs {
		m[e.Ticker] = e
	}
	return catalogHandler{etfs: m}
}

// DefaultCatalog is the catalog compiled into the binary
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalogYaml)
}

func ParseCatalog(b []byte) (Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse etf catalog: %w", err)
	}

	etfs := make([]domain.ETF, 0, len(f.Etfs))
	seen := map[string]struct{}{}
	for _, e := range f.Etfs {
		if e.Ticker == "" {
			return nil, fmt.Errorf("etf catalog entry missing ticker")
		}
		if _, ok := seen[e.Ticker]; ok {
			return nil, fmt.Errorf("duplicate etf %s in catalog", e.Ticker)
		}
		seen[e.Ticker] = struct{}{}

		leverageType := domain.LeverageType(e.LeverageType)
		if e.LeverageType == "" {
			leverageType = domain.LeverageType_None
		}
		if !leverageType.Valid() {
			return nil, fmt.Errorf("etf %s has unknown leverage type %q", e.Ticker, e.LeverageType)
		}

		exposures := make(map[domain.ExposureKey]float64, len(e.Exposures))
		for k, amount := range e.Exposures {
			key, err := domain.ParseExposureKey(k)
			if err != nil {
				return nil, fmt.Errorf("etf %s: %w", e.Ticker, err)
			}
			exposures[key] = amount
		}

		etfs = append(etfs, domain.ETF{
			Ticker:       e.Ticker,
			Name:         e.Name,
			Exposures:    exposures,
			LeverageType: leverageType,
		})
	}

	return NewCatalog(etfs), nil
}

func (c catalogHandler) Lookup(ticker string) (*domain.ETF, bool) {
	e, ok := c.etfs[ticker]
	if !ok {
		return nil, false
	}
	return &e, true
}

func (c catalogHandler) All() []domain.ETF {
	out := make([]domain.ETF, 0, len(c.etfs))
	for _, e := range c.etfs {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Ticker < out[j].Ticker
	})
	return out
}
