package validation

import (
	"folio/internal/domain"
	"folio/internal/exposure"
)

type ValidationService interface {
	Validate(p domain.Portfolio) []domain.Warning
	ValidateWithAnalysis(p domain.Portfolio, analysis domain.PortfolioAnalysis) []domain.Warning
}

type validationServiceHandler struct {
	Calculator *exposure.Calculator
	Rules      []Rule
}

func NewValidationService(calculator *exposure.Calculator, rules ...Rule) ValidationService {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return validationServiceHandler{
		Calculator: calculator,
		Rules:      rules,
	}
}

func (h validationServiceHandler) Validate(p domain.Portfolio) []domain.Warning {
	return h.ValidateWithAnalysis(p, h.Calculator.AnalyzePortfolio(p))
}

func (h validationServiceHandler) ValidateWithAnalysis(p domain.Portfolio, analysis domain.PortfolioAnalysis) []domain.Warning {
	in := Input{
		Portfolio: p,
		Analysis:  analysis,
		Catalog:   h.Calculator.Catalog(),
	}
	out := []domain.Warning{}
	for _, rule := range h.Rules {
		out = append(out, rule(in)...)
	}
	return out
}
