package repository

import (
	"context"

	"folio/internal/domain"
)

//go:generate mockgen -source=portfolio_repository.go -destination=mock_portfolio_repository.go -package=repository

// PortfolioRepository is the storage adapter contract every
// backend implements
type PortfolioRepository interface {
	Save(ctx context.Context, p domain.SerializedPortfolio) error
	List(ctx context.Context) ([]domain.SerializedPortfolio, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}
