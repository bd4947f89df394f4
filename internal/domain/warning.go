package domain

type WarningType string

const (
	WarningType_Concentration   WarningType = "concentration"
	WarningType_Leverage        WarningType = "leverage"
	WarningType_Diversification WarningType = "diversification"
)

// Warning is advisory only, nothing is blocked by it
type Warning struct {
	Type        WarningType `json:"type"`
	Message     string      `json:"message"`
	Description string      `json:"description"`
}
