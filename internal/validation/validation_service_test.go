package validation

import (
	. "folio/internal/domain"
	"folio/internal/exposure"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) ValidationService {
	catalog, err := exposure.DefaultCatalog()
	require.NoError(t, err)
	return NewValidationService(exposure.NewCalculator(catalog, zerolog.Nop()))
}

func warningTypes(warnings []Warning) []WarningType {
	out := []WarningType{}
	for _, w := range warnings {
		out = append(out, w.Type)
	}
	return out
}

func TestValidate(t *testing.T) {
	s := newTestService(t)

	t.Run("concentration and emerging", func(t *testing.T) {
		holdings := Holdings{
			"VTI":  {Percentage: 40},
			"VXUS": {Percentage: 30},
			"AVUV": {Percentage: 30},
		}
		warnings := s.Validate(Portfolio{Holdings: holdings})
		require.Equal(t, []WarningType{
			WarningType_Concentration,
			WarningType_Concentration,
			WarningType_Concentration,
			WarningType_Diversification,
		}, warningTypes(warnings))
		require.Equal(t, "AVUV is 30.0% of the portfolio", warnings[0].Message)
		require.Equal(t, "Only 7.5% of equity exposure is emerging markets", warnings[3].Message)

		// untouched
		require.Equal(t, Holdings{
			"VTI":  {Percentage: 40},
			"VXUS": {Percentage: 30},
			"AVUV": {Percentage: 30},
		}, holdings)
	})

	t.Run("us only", func(t *testing.T) {
		warnings := s.Validate(Portfolio{Holdings: Holdings{"VTI": {Percentage: 100}}})
		require.Equal(t, []WarningType{
			WarningType_Concentration,
			WarningType_Diversification,
			WarningType_Diversification,
			WarningType_Diversification,
		}, warningTypes(warnings))
	})

	t.Run("daily reset above 2x", func(t *testing.T) {
		warnings := s.Validate(Portfolio{Holdings: Holdings{
			"UPRO": {Percentage: 10},
			"SSO":  {Percentage: 10},
			"VTI":  {Percentage: 20},
			"VEA":  {Percentage: 20},
			"VWO":  {Percentage: 20},
			"AVUV": {Percentage: 20},
		}})
		require.Equal(t, []WarningType{WarningType_Leverage}, warningTypes(warnings))
		require.Equal(t, "UPRO resets to 3.0x leverage daily", warnings[0].Message)
	})

	t.Run("no equity skips diversification", func(t *testing.T) {
		warnings := s.Validate(Portfolio{Holdings: Holdings{
			"BND": {Percentage: 50},
			"GLD": {Percentage: 50},
		}})
		require.Equal(t, []WarningType{
			WarningType_Concentration,
			WarningType_Concentration,
		}, warningTypes(warnings))
	})

	t.Run("disabled holdings ignored", func(t *testing.T) {
		warnings := s.Validate(Portfolio{Holdings: Holdings{
			"UPRO": {Percentage: 50, Disabled: true},
		}})
		require.Empty(t, warnings)
	})
}

func TestCustomRules(t *testing.T) {
	catalog, err := exposure.DefaultCatalog()
	require.NoError(t, err)
	s := NewValidationService(exposure.NewCalculator(catalog, zerolog.Nop()), ConcentrationRule)

	warnings := s.Validate(Portfolio{Holdings: Holdings{"VTI": {Percentage: 100}}})
	require.Len(t, warnings, 1)
}
