package resolver

import (
	"context"
	"fmt"

	api_types "folio/api-types"
	folio_errors "folio/internal"
	"folio/internal/domain"
	"folio/internal/service"
)

func portfolioFromApi(p api_types.Portfolio) domain.Portfolio {
	holdings := domain.Holdings{}
	for ticker, h := range p.Holdings {
		holdings[ticker] = h
	}
	out := domain.Portfolio{
		Name:     p.Name,
		Holdings: holdings,
	}
	if p.CreatedAt != nil {
		t := *p.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

func portfolioToApi(p domain.Portfolio) api_types.Portfolio {
	holdings := map[string]domain.Holding{}
	for ticker, h := range p.Holdings {
		holdings[ticker] = h
	}
	return api_types.Portfolio{
		Name:      p.Name,
		Holdings:  holdings,
		CreatedAt: p.CreatedAt,
	}
}

func reportToApi(r service.PortfolioReport) api_types.PortfolioReportResponse {
	exposures := map[string]float64{}
	for k, v := range r.Analysis.Exposures {
		exposures[k.String()] = v
	}
	assetClasses := map[string]float64{}
	for k, v := range r.Analysis.AssetClasses {
		assetClasses[string(k)] = v
	}

	dominant := []api_types.AssetClassExposure{}
	for _, d := range r.DominantAssetClasses {
		dominant = append(dominant, api_types.AssetClassExposure{
			AssetClass: string(d.AssetClass),
			Amount:     d.Amount,
		})
	}

	out := api_types.PortfolioReportResponse{
		Portfolio: portfolioToApi(r.Portfolio),
		Analysis: api_types.Analysis{
			Exposures:     exposures,
			AssetClasses:  assetClasses,
			TotalLeverage: r.Analysis.TotalLeverage,
			IsLevered:     r.Analysis.IsLevered,
		},
		DominantAssetClasses: dominant,
		Warnings:             append([]domain.Warning{}, r.Warnings...),
		IsPrecise:            r.IsPrecise,
	}
	if r.EquityBreakdown != nil {
		out.EquityBreakdown = &api_types.EquityBreakdown{
			USPercent:                     r.EquityBreakdown.USPercent,
			ExUSPercent:                   r.EquityBreakdown.ExUSPercent,
			InternationalDevelopedPercent: r.EquityBreakdown.InternationalDevelopedPercent,
			EmergingPercent:               r.EquityBreakdown.EmergingPercent,
		}
	}
	return out
}

func reportPtrToApi(r *service.PortfolioReport, err error) (*api_types.PortfolioReportResponse, error) {
	if err != nil {
		return nil, err
	}
	out := reportToApi(*r)
	return &out, nil
}

func (r resolverHandler) ListEtfs() api_types.ListEtfsResponse {
	out := []api_types.Etf{}
	for _, etf := range r.Catalog.All() {
		exposures := map[string]float64{}
		for k, v := range etf.Exposures {
			exposures[k.String()] = v
		}
		out = append(out, api_types.Etf{
			Ticker:        etf.Ticker,
			Name:          etf.Name,
			LeverageType:  string(etf.LeverageType),
			Exposures:     exposures,
			TotalExposure: etf.TotalExposure(),
		})
	}
	return api_types.ListEtfsResponse{Etfs: out}
}

func (r resolverHandler) AnalyzePortfolio(req api_types.AnalyzePortfolioRequest) api_types.PortfolioReportResponse {
	return reportToApi(r.PortfolioService.Analyze(portfolioFromApi(req.Portfolio)))
}

func (r resolverHandler) UpdateAllocation(req api_types.UpdateAllocationRequest) (*api_types.PortfolioReportResponse, error) {
	return reportPtrToApi(r.PortfolioService.UpdateAllocation(portfolioFromApi(req.Portfolio), req.Ticker, req.Percentage))
}

func (r resolverHandler) AddHolding(req api_types.AddHoldingRequest) (*api_types.PortfolioReportResponse, error) {
	return reportPtrToApi(r.PortfolioService.AddHolding(portfolioFromApi(req.Portfolio), req.Ticker, req.Percentage))
}

func (r resolverHandler) RemoveHolding(req api_types.RemoveHoldingRequest) (*api_types.PortfolioReportResponse, error) {
	return reportPtrToApi(r.PortfolioService.RemoveHolding(portfolioFromApi(req.Portfolio), req.Ticker))
}

func (r resolverHandler) ToggleHolding(req api_types.ToggleHoldingRequest) (*api_types.PortfolioReportResponse, error) {
	p := portfolioFromApi(req.Portfolio)
	switch req.Action {
	case api_types.ToggleAction_Lock:
		return reportPtrToApi(r.PortfolioService.ToggleLock(p, req.Ticker))
	case api_types.ToggleAction_Disable:
		return reportPtrToApi(r.PortfolioService.ToggleDisable(p, req.Ticker))
	default:
		return nil, folio_errors.ErrInvalidRequest{Reason: fmt.Sprintf("unknown toggle action %q", req.Action)}
	}
}

func (r resolverHandler) EqualWeight(req api_types.EqualWeightRequest) (*api_types.PortfolioReportResponse, error) {
	return reportPtrToApi(r.PortfolioService.EqualWeight(portfolioFromApi(req.Portfolio)))
}

func (r resolverHandler) SavePortfolio(ctx context.Context, req api_types.SavePortfolioRequest) error {
	return r.PortfolioService.Save(ctx, portfolioFromApi(req.Portfolio))
}

func (r resolverHandler) ListPortfolios(ctx context.Context) (*api_types.ListPortfoliosResponse, error) {
	portfolios, err := r.PortfolioService.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []api_types.Portfolio{}
	for _, p := range portfolios {
		out = append(out, portfolioToApi(p))
	}
	return &api_types.ListPortfoliosResponse{Portfolios: out}, nil
}

func (r resolverHandler) DeletePortfolio(ctx context.Context, name string) error {
	return r.PortfolioService.Delete(ctx, name)
}

func (r resolverHandler) PortfolioExists(ctx context.Context, name string) (*api_types.PortfolioExistsResponse, error) {
	exists, err := r.PortfolioService.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	return &api_types.PortfolioExistsResponse{Exists: exists}, nil
}
