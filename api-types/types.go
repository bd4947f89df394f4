package types

import (
	"time"

	"folio/internal/domain"

	"github.com/google/uuid"
)

// portfolio builder

type Portfolio struct {
	Name      string                    `json:"name"`
	Holdings  map[string]domain.Holding `json:"holdings"`
	CreatedAt *time.Time                `json:"createdAt,omitempty"`
}

type Etf struct {
	Ticker        string             `json:"ticker"`
	Name          string             `json:"name"`
	LeverageType  string             `json:"leverageType"`
	Exposures     map[string]float64 `json:"exposures"`
	TotalExposure float64            `json:"totalExposure"`
}

type ListEtfsResponse struct {
	Etfs []Etf `json:"etfs"`
}

type AnalyzePortfolioRequest struct {
	Portfolio Portfolio `json:"portfolio"`
}

type UpdateAllocationRequest struct {
	Portfolio  Portfolio `json:"portfolio"`
	Ticker     string    `json:"ticker"`
	Percentage float64   `json:"percentage"`
}

type AddHoldingRequest struct {
	Portfolio  Portfolio `json:"portfolio"`
	Ticker     string    `json:"ticker"`
	Percentage float64   `json:"percentage"`
}

type RemoveHoldingRequest struct {
	Portfolio Portfolio `json:"portfolio"`
	Ticker    string    `json:"ticker"`
}

type ToggleAction string

const (
	ToggleAction_Lock    ToggleAction = "lock"
	ToggleAction_Disable ToggleAction = "disable"
)

type ToggleHoldingRequest struct {
	Portfolio Portfolio    `json:"portfolio"`
	Ticker    string       `json:"ticker"`
	Action    ToggleAction `json:"action"`
}

type EqualWeightRequest struct {
	Portfolio Portfolio `json:"portfolio"`
}

type Analysis struct {
	Exposures     map[string]float64 `json:"exposures"`
	AssetClasses  map[string]float64 `json:"assetClasses"`
	TotalLeverage float64            `json:"totalLeverage"`
	IsLevered     bool               `json:"isLevered"`
}

type EquityBreakdown struct {
	USPercent                     float64 `json:"usPercent"`
	ExUSPercent                   float64 `json:"exUsPercent"`
	InternationalDevelopedPercent float64 `json:"internationalDevelopedPercent"`
	EmergingPercent               float64 `json:"emergingPercent"`
}

type AssetClassExposure struct {
	AssetClass string  `json:"assetClass"`
	Amount     float64 `json:"amount"`
}

type PortfolioReportResponse struct {
	Portfolio            Portfolio            `json:"portfolio"`
	Analysis             Analysis             `json:"analysis"`
	EquityBreakdown      *EquityBreakdown     `json:"equityBreakdown"`
	DominantAssetClasses []AssetClassExposure `json:"dominantAssetClasses"`
	Warnings             []domain.Warning     `json:"warnings"`
	IsPrecise            bool                 `json:"isPrecise"`
}

type SavePortfolioRequest struct {
	Portfolio Portfolio `json:"portfolio"`
}

type ListPortfoliosResponse struct {
	Portfolios []Portfolio `json:"portfolios"`
}

type PortfolioExistsResponse struct {
	Exists bool `json:"exists"`
}

// csv editor

type ParseCsvRequest struct {
	Text string `json:"text"`
}

type ParseCsvResponse struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type ExportMode string

const (
	ExportMode_All        ExportMode = "all"
	ExportMode_Selected   ExportMode = "selected"
	ExportMode_Deselected ExportMode = "deselected"
)

type ExportCsvRequest struct {
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
	Selected []int      `json:"selected"`
	Mode     ExportMode `json:"mode"`
}

type ExportCsvResponse struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type CsvPreferences struct {
	Density   string `json:"density"`
	Theme     string `json:"theme"`
	FullWidth bool   `json:"fullWidth"`
}

// medication tracker

type MedicationStatusResponse struct {
	Doses         []domain.Dose    `json:"doses"`
	IntervalHours float64          `json:"intervalHours"`
	LastDose      *domain.Dose     `json:"lastDose"`
	Elapsed       string           `json:"elapsed"`
	NextDoseAt    *time.Time       `json:"nextDoseAt"`
	Overdue       bool             `json:"overdue"`
	Adherence     domain.Adherence `json:"adherence"`
	Stats         domain.DoseStats `json:"stats"`
}

type LogDoseRequest struct {
	TakenAt *time.Time `json:"takenAt"`
	Note    string     `json:"note"`
}

type LogDoseResponse struct {
	Dose domain.Dose `json:"dose"`
}

type DeleteDoseRequest struct {
	DoseID uuid.UUID
}

type SetIntervalRequest struct {
	IntervalHours float64 `json:"intervalHours"`
}

type BackupResponse struct {
	FileID       string    `json:"fileId"`
	Name         string    `json:"name"`
	ModifiedTime time.Time `json:"modifiedTime"`
}
