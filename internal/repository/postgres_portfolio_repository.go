package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	folio_errors "folio/internal"
	"folio/internal/db/models/postgres/public/model"
	. "folio/internal/db/models/postgres/public/table"
	db "folio/internal/db/query"
	"folio/internal/domain"
	"folio/internal/precision"
	"folio/internal/util"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type postgresPortfolioRepositoryHandler struct {
	DB  *sql.DB
	log zerolog.Logger
}

func NewPostgresPortfolioRepository(db *sql.DB, log zerolog.Logger) PortfolioRepository {
	return postgresPortfolioRepositoryHandler{
		DB:  db,
		log: log.With().Str("component", "postgres_portfolio_repository").Logger(),
	}
}

type portfolioWithHoldings struct {
	model.Portfolio
	Holdings []model.PortfolioHolding
}

func serializedToModels(p domain.SerializedPortfolio, portfolioID uuid.UUID) (model.Portfolio, []model.PortfolioHolding) {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	portfolio := model.Portfolio{
		PortfolioID: portfolioID,
		Name:        p.Name,
		CreatedAt:   createdAt,
	}
	if p.EtfCount != nil {
		count := int32(*p.EtfCount)
		portfolio.EtfCount = &count
	}

	holdings := make([]model.PortfolioHolding, len(p.Holdings))
	for i, e := range p.Holdings {
		holdings[i] = model.PortfolioHolding{
			PortfolioID: portfolioID,
			Ticker:      e.Ticker,
			Percentage:  e.Holding.Percentage,
			BasisPoints: int32(e.Holding.BasisPoints),
			Locked:      e.Holding.Locked,
			Disabled:    e.Holding.Disabled,
		}
	}
	return portfolio, holdings
}

func modelsToSerialized(in portfolioWithHoldings) domain.SerializedPortfolio {
	out := domain.SerializedPortfolio{
		Name:      in.Name,
		CreatedAt: in.CreatedAt,
		Holdings:  make([]domain.HoldingEntry, len(in.Holdings)),
	}
	if in.EtfCount != nil {
		out.EtfCount = util.IntPtr(int(*in.EtfCount))
	}
	for i, h := range in.Holdings {
		out.Holdings[i] = domain.HoldingEntry{
			Ticker: h.Ticker,
			Holding: precision.EnsureBasisPoints(domain.Holding{
				Percentage:  h.Percentage,
				BasisPoints: domain.BasisPoints(h.BasisPoints),
				Locked:      h.Locked,
				Disabled:    h.Disabled,
			}),
		}
	}
	return out
}

func (h postgresPortfolioRepositoryHandler) fail(op folio_errors.StorageOperation, name string, err error) error {
	h.log.Error().Err(err).Str("op", string(op)).Str("portfolio", name).Msg("portfolio storage failed")
	return folio_errors.ErrStorage{Operation: op, Name: name, Err: err}
}

func softDeleteQuery(name string) postgres.UpdateStatement {
	return Portfolio.UPDATE(
		Portfolio.DeletedAt,
	).SET(
		time.Now().UTC(),
	).WHERE(
		postgres.AND(
			Portfolio.Name.EQ(postgres.String(name)),
			Portfolio.DeletedAt.IS_NULL(),
		),
	)
}

// Save replaces any live portfolio with the same name
func (h postgresPortfolioRepositoryHandler) Save(ctx context.Context, p domain.SerializedPortfolio) error {
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return h.fail(folio_errors.StorageOperation_Save, p.Name, err)
	}
	defer tx.Rollback()

	if _, err := softDeleteQuery(p.Name).ExecContext(ctx, tx); err != nil {
		return h.fail(folio_errors.StorageOperation_Save, p.Name, fmt.Errorf("failed to retire previous version: %w", err))
	}

	portfolio, holdings := serializedToModels(p, uuid.New())
	insertPortfolio := Portfolio.INSERT(
		Portfolio.AllColumns,
	).MODEL(
		portfolio,
	)
	if _, err := insertPortfolio.ExecContext(ctx, tx); err != nil {
		if db.IsDuplicateEntryErr(err) {
			err = fmt.Errorf("portfolio was saved concurrently: %w", err)
		}
		return h.fail(folio_errors.StorageOperation_Save, p.Name, fmt.Errorf("failed to insert portfolio: %w", err))
	}

	if len(holdings) > 0 {
		insertHoldings := PortfolioHolding.INSERT(
			PortfolioHolding.AllColumns,
		).MODELS(
			holdings,
		)
		if _, err := insertHoldings.ExecContext(ctx, tx); err != nil {
			return h.fail(folio_errors.StorageOperation_Save, p.Name, fmt.Errorf("failed to insert holdings: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return h.fail(folio_errors.StorageOperation_Save, p.Name, err)
	}
	return nil
}

func (h postgresPortfolioRepositoryHandler) List(ctx context.Context) ([]domain.SerializedPortfolio, error) {
	query := postgres.SELECT(
		Portfolio.AllColumns,
		PortfolioHolding.AllColumns,
	).FROM(
		Portfolio.LEFT_JOIN(
			PortfolioHolding,
			PortfolioHolding.PortfolioID.EQ(Portfolio.PortfolioID),
		),
	).WHERE(
		Portfolio.DeletedAt.IS_NULL(),
	).ORDER_BY(
		Portfolio.CreatedAt.ASC(),
		PortfolioHolding.Ticker.ASC(),
	)

	var results []portfolioWithHoldings
	if err := query.QueryContext(ctx, h.DB, &results); err != nil {
		h.log.Debug().Str("sql", query.DebugSql()).Msg("failed query")
		return nil, h.fail(folio_errors.StorageOperation_Load, "", err)
	}

	out := make([]domain.SerializedPortfolio, len(results))
	for i, r := range results {
		out[i] = modelsToSerialized(r)
	}
	return out, nil
}

func (h postgresPortfolioRepositoryHandler) Delete(ctx context.Context, name string) error {
	if _, err := softDeleteQuery(name).ExecContext(ctx, h.DB); err != nil {
		return h.fail(folio_errors.StorageOperation_Delete, name, err)
	}
	return nil
}

func (h postgresPortfolioRepositoryHandler) Exists(ctx context.Context, name string) (bool, error) {
	query := Portfolio.SELECT(
		Portfolio.PortfolioID,
	).WHERE(
		postgres.AND(
			Portfolio.Name.EQ(postgres.String(name)),
			Portfolio.DeletedAt.IS_NULL(),
		),
	).LIMIT(1)

	var results []model.Portfolio
	if err := query.QueryContext(ctx, h.DB, &results); err != nil {
		return false, h.fail(folio_errors.StorageOperation_Exists, name, err)
	}
	return len(results) > 0, nil
}
