package resolver

import (
	"context"
	"time"

	api_types "folio/api-types"
	"folio/internal/exposure"
	"folio/internal/service"
	"folio/internal/store"
)

type Resolver interface {
	// portfolio builder endpoints
	ListEtfs() api_types.ListEtfsResponse
	AnalyzePortfolio(req api_types.AnalyzePortfolioRequest) api_types.PortfolioReportResponse
	UpdateAllocation(req api_types.UpdateAllocationRequest) (*api_types.PortfolioReportResponse, error)
	AddHolding(req api_types.AddHoldingRequest) (*api_types.PortfolioReportResponse, error)
	RemoveHolding(req api_types.RemoveHoldingRequest) (*api_types.PortfolioReportResponse, error)
	ToggleHolding(req api_types.ToggleHoldingRequest) (*api_types.PortfolioReportResponse, error)
	EqualWeight(req api_types.EqualWeightRequest) (*api_types.PortfolioReportResponse, error)

	// saved portfolio endpoints
	SavePortfolio(ctx context.Context, req api_types.SavePortfolioRequest) error
	ListPortfolios(ctx context.Context) (*api_types.ListPortfoliosResponse, error)
	DeletePortfolio(ctx context.Context, name string) error
	PortfolioExists(ctx context.Context, name string) (*api_types.PortfolioExistsResponse, error)

	// csv editor endpoints
	ParseCsv(req api_types.ParseCsvRequest) (*api_types.ParseCsvResponse, error)
	ExportCsv(req api_types.ExportCsvRequest) (*api_types.ExportCsvResponse, error)
	GetCsvPreferences() (*api_types.CsvPreferences, error)
	UpdateCsvPreferences(req api_types.CsvPreferences) (*api_types.CsvPreferences, error)

	// medication endpoints
	GetMedicationStatus(now time.Time) (*api_types.MedicationStatusResponse, error)
	LogDose(req api_types.LogDoseRequest) (*api_types.LogDoseResponse, error)
	DeleteDose(req api_types.DeleteDoseRequest) (*api_types.MedicationStatusResponse, error)
	SetInterval(req api_types.SetIntervalRequest) (*api_types.MedicationStatusResponse, error)
	BackupMedication(ctx context.Context) (*api_types.BackupResponse, error)
	RestoreMedication(ctx context.Context) (*api_types.MedicationStatusResponse, error)
}

type resolverHandler struct {
	KV                store.KeyValueStore
	Catalog           exposure.Catalog
	PortfolioService  service.PortfolioService
	MedicationService service.MedicationService
}

func NewResolver(
	kv store.KeyValueStore,
	catalog exposure.Catalog,
	portfolioService service.PortfolioService,
	medicationService service.MedicationService,
) Resolver {
	return resolverHandler{
		KV:                kv,
		Catalog:           catalog,
		PortfolioService:  portfolioService,
		MedicationService: medicationService,
	}
}
