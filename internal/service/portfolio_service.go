package service

import (
	"context"
	"fmt"
	"strings"

	folio_errors "folio/internal"
	"folio/internal/allocation"
	. "folio/internal/domain"
	"folio/internal/exposure"
	"folio/internal/precision"
	"folio/internal/repository"
	"folio/internal/validation"

	"github.com/rs/zerolog"
)

// PortfolioReport is everything the builder shows
// next to a portfolio
type PortfolioReport struct {
	Portfolio            Portfolio
	Analysis             PortfolioAnalysis
	EquityBreakdown      *EquityBreakdown
	DominantAssetClasses []AssetClassExposure
	Warnings             []Warning
	IsPrecise            bool
}

type PortfolioService interface {
	Analyze(p Portfolio) PortfolioReport

	UpdateAllocation(p Portfolio, ticker string, percentage float64) (*PortfolioReport, error)
	AddHolding(p Portfolio, ticker string, percentage float64) (*PortfolioReport, error)
	RemoveHolding(p Portfolio, ticker string) (*PortfolioReport, error)
	ToggleLock(p Portfolio, ticker string) (*PortfolioReport, error)
	ToggleDisable(p Portfolio, ticker string) (*PortfolioReport, error)
	EqualWeight(p Portfolio) (*PortfolioReport, error)

	Save(ctx context.Context, p Portfolio) error
	List(ctx context.Context) ([]Portfolio, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}

type portfolioServiceHandler struct {
	Calculator          *exposure.Calculator
	ValidationService   validation.ValidationService
	PortfolioRepository repository.PortfolioRepository
	log                 zerolog.Logger
}

func NewPortfolioService(
	calculator *exposure.Calculator,
	validationService validation.ValidationService,
	portfolioRepository repository.PortfolioRepository,
	log zerolog.Logger,
) PortfolioService {
	return portfolioServiceHandler{
		Calculator:          calculator,
		ValidationService:   validationService,
		PortfolioRepository: portfolioRepository,
		log:                 log.With().Str("component", "portfolio_service").Logger(),
	}
}

// Analyze reports on the holdings as given. missing basis
// points are filled in but nothing is rescaled, so an under
// or over allocated portfolio comes back as not precise
func (h portfolioServiceHandler) Analyze(p Portfolio) PortfolioReport {
	analysis := h.Calculator.AnalyzePortfolio(p)

	p = p.DeepCopy()
	p.Holdings = precision.Fill(p.Holdings)
	return PortfolioReport{
		Portfolio:            p,
		Analysis:             analysis,
		EquityBreakdown:      exposure.EquityBreakdownFromAnalysis(analysis),
		DominantAssetClasses: exposure.GetDominantAssetClasses(analysis),
		Warnings:             h.ValidationService.ValidateWithAnalysis(p, analysis),
		IsPrecise:            precision.IsPortfolioPrecise(p.Holdings),
	}
}

type holdingsMutation func(Holdings) (Holdings, error)

func (h portfolioServiceHandler) apply(p Portfolio, op string, ticker string, mutate holdingsMutation) (*PortfolioReport, error) {
	holdings, err := mutate(p.Holdings)
	if err != nil {
		h.log.Debug().Err(err).Str("op", op).Str("ticker", ticker).Msg("allocation change rejected")
		return nil, fmt.Errorf("failed to %s %s: %w", op, ticker, err)
	}
	out := p.DeepCopy()
	out.Holdings = holdings
	report := h.Analyze(out)
	return &report, nil
}

func (h portfolioServiceHandler) UpdateAllocation(p Portfolio, ticker string, percentage float64) (*PortfolioReport, error) {
	return h.apply(p, "update allocation of", ticker, func(holdings Holdings) (Holdings, error) {
		return allocation.UpdateAllocation(holdings, ticker, percentage)
	})
}

func (h portfolioServiceHandler) AddHolding(p Portfolio, ticker string, percentage float64) (*PortfolioReport, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if _, ok := h.Calculator.Catalog().Lookup(ticker); !ok {
		return nil, folio_errors.ErrUnknownETF{Ticker: ticker}
	}
	return h.apply(p, "add", ticker, func(holdings Holdings) (Holdings, error) {
		return allocation.AddHolding(holdings, ticker, percentage)
	})
}

func (h portfolioServiceHandler) RemoveHolding(p Portfolio, ticker string) (*PortfolioReport, error) {
	return h.apply(p, "remove", ticker, func(holdings Holdings) (Holdings, error) {
		return allocation.RedistributeAfterRemoval(holdings, ticker)
	})
}

func (h portfolioServiceHandler) ToggleLock(p Portfolio, ticker string) (*PortfolioReport, error) {
	return h.apply(p, "toggle lock on", ticker, func(holdings Holdings) (Holdings, error) {
		return allocation.ToggleLock(holdings, ticker)
	})
}

func (h portfolioServiceHandler) ToggleDisable(p Portfolio, ticker string) (*PortfolioReport, error) {
	return h.apply(p, "toggle", ticker, func(holdings Holdings) (Holdings, error) {
		return allocation.ToggleDisable(holdings, ticker)
	})
}

func (h portfolioServiceHandler) EqualWeight(p Portfolio) (*PortfolioReport, error) {
	return h.apply(p, "equal weight", p.Name, allocation.EqualWeight)
}

func (h portfolioServiceHandler) Save(ctx context.Context, p Portfolio) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return folio_errors.ErrInvalidRequest{Reason: "portfolio name is required"}
	}
	p = p.DeepCopy()
	p.Holdings = precision.Normalize(p.Holdings)
	return h.PortfolioRepository.Save(ctx, p.Serialize())
}

// List upgrades older saves that only carried
// percentages on the way out
func (h portfolioServiceHandler) List(ctx context.Context) ([]Portfolio, error) {
	saved, err := h.PortfolioRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Portfolio, len(saved))
	for i, s := range saved {
		p := s.ToPortfolio()
		p.Holdings = precision.Normalize(p.Holdings)
		out[i] = p
	}
	return out, nil
}

func (h portfolioServiceHandler) Delete(ctx context.Context, name string) error {
	exists, err := h.PortfolioRepository.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return folio_errors.ErrPortfolioNotFound{Name: name}
	}
	return h.PortfolioRepository.Delete(ctx, name)
}

func (h portfolioServiceHandler) Exists(ctx context.Context, name string) (bool, error) {
	return h.PortfolioRepository.Exists(ctx, name)
}
