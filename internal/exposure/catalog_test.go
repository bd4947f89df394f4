package exposure

import (
	"folio/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	rsst, ok := catalog.Lookup("RSST")
	require.True(t, ok)
	require.Equal(t, domain.LeverageType_Stacked, rsst.LeverageType)
	require.Equal(t, 2.0, rsst.TotalExposure())

	upro, ok := catalog.Lookup("UPRO")
	require.True(t, ok)
	require.Equal(t, domain.LeverageType_DailyReset, upro.LeverageType)

	_, ok = catalog.Lookup("NOTREAL")
	require.False(t, ok)

	all := catalog.All()
	for i := 1; i < len(all); i++ {
		require.Less(t, all[i-1].Ticker, all[i].Ticker)
	}
}

func TestParseCatalog(t *testing.T) {
	t.Run("bad leverage type", func(t *testing.T) {
		_, err := ParseCatalog([]byte(`
etfs:
  - ticker: ABC
    leverageType: Sideways
    exposures:
      Equity: 1.0
`))
		require.ErrorContains(t, err, "unknown leverage type")
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := ParseCatalog([]byte(`
etfs:
  - ticker: ABC
  - ticker: ABC
`))
		require.ErrorContains(t, err, "duplicate etf ABC")
	})

	t.Run("defaults to no leverage", func(t *testing.T) {
		c, err := ParseCatalog([]byte(`
etfs:
  - ticker: ABC
    exposures:
      Gold: 1.0
`))
		require.NoError(t, err)
		abc, ok := c.Lookup("ABC")
		require.True(t, ok)
		require.Equal(t, domain.LeverageType_None, abc.LeverageType)
		require.Equal(t, 1.0, abc.Exposures[domain.ExposureKey{AssetClass: domain.AssetClass_Gold}])
	})
}
