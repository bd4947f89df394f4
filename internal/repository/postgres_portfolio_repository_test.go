package repository

import (
	"context"
	"testing"

	db "folio/internal/db/query"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func Test_postgresPortfolioRepositoryHandler(t *testing.T) {
	dbConn := db.NewTest(t)
	ctx := context.Background()
	repo := NewPostgresPortfolioRepository(dbConn, zerolog.Nop())

	// names are unique per run so reruns against the
	// same database don't collide
	suffix := uuid.NewString()
	growth := testPortfolio("growth-" + suffix)
	income := testPortfolio("income-" + suffix)
	t.Cleanup(func() {
		repo.Delete(ctx, growth.Name)
		repo.Delete(ctx, income.Name)
	})

	require.NoError(t, repo.Save(ctx, growth))
	require.NoError(t, repo.Save(ctx, income))

	exists, err := repo.Exists(ctx, growth.Name)
	require.NoError(t, err)
	require.True(t, exists)

	updated := testPortfolio(growth.Name)
	updated.Holdings = updated.Holdings[1:]
	require.NoError(t, repo.Save(ctx, updated))

	portfolios, err := repo.List(ctx)
	require.NoError(t, err)
	byName := map[string]int{}
	for i, p := range portfolios {
		byName[p.Name] = i
	}
	require.Contains(t, byName, growth.Name)
	require.Contains(t, byName, income.Name)
	require.Equal(t, "", cmp.Diff(updated.Holdings, portfolios[byName[growth.Name]].Holdings))
	require.Equal(t, "", cmp.Diff(income.Holdings, portfolios[byName[income.Name]].Holdings))

	require.NoError(t, repo.Delete(ctx, growth.Name))
	exists, err = repo.Exists(ctx, growth.Name)
	require.NoError(t, err)
	require.False(t, exists)

	t.Run("soft delete only touches live rows", func(t *testing.T) {
		tx, err := dbConn.BeginTx(ctx, nil)
		require.NoError(t, err)
		db.RollbackAfterTest(t, tx)

		res, err := softDeleteQuery(income.Name).ExecContext(ctx, tx)
		require.NoError(t, err)
		affected, err := res.RowsAffected()
		require.NoError(t, err)
		require.Equal(t, int64(1), affected)

		res, err = softDeleteQuery(growth.Name).ExecContext(ctx, tx)
		require.NoError(t, err)
		affected, err = res.RowsAffected()
		require.NoError(t, err)
		require.Equal(t, int64(0), affected)
	})
}
