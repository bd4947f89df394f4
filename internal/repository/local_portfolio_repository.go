package repository

import (
	"context"
	"encoding/json"
	"sync"

	folio_errors "folio/internal"
	"folio/internal/domain"
	"folio/internal/store"

	"github.com/rs/zerolog"
)

const SavedPortfoliosKey = "saved_portfolios"

// localPortfolioRepositoryHandler keeps every portfolio as
// one json array under a single key, the same layout the
// browser version kept in localStorage. mu covers every
// read-change-write of that key
type localPortfolioRepositoryHandler struct {
	KV  store.KeyValueStore
	log zerolog.Logger

	mu sync.Mutex
}

func NewLocalPortfolioRepository(kv store.KeyValueStore, log zerolog.Logger) PortfolioRepository {
	return &localPortfolioRepositoryHandler{
		KV:  kv,
		log: log.With().Str("component", "local_portfolio_repository").Logger(),
	}
}

func (h *localPortfolioRepositoryHandler) read() ([]domain.SerializedPortfolio, error) {
	raw, ok, err := h.KV.Get(SavedPortfoliosKey)
	if err != nil {
		return nil, err
	}
	out := []domain.SerializedPortfolio{}
	if !ok || raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *localPortfolioRepositoryHandler) write(portfolios []domain.SerializedPortfolio) error {
	b, err := json.Marshal(portfolios)
	if err != nil {
		return err
	}
	return h.KV.Set(SavedPortfoliosKey, string(b))
}

func (h *localPortfolioRepositoryHandler) fail(op folio_errors.StorageOperation, name string, err error) error {
	h.log.Error().Err(err).Str("op", string(op)).Str("portfolio", name).Msg("portfolio storage failed")
	return folio_errors.ErrStorage{Operation: op, Name: name, Err: err}
}

func (h *localPortfolioRepositoryHandler) Save(ctx context.Context, p domain.SerializedPortfolio) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	portfolios, err := h.read()
	if err != nil {
		return h.fail(folio_errors.StorageOperation_Save, p.Name, err)
	}

	replaced := false
	for i, existing := range portfolios {
		if existing.Name == p.Name {
			portfolios[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		portfolios = append(portfolios, p)
	}

	if err := h.write(portfolios); err != nil {
		return h.fail(folio_errors.StorageOperation_Save, p.Name, err)
	}
	return nil
}

func (h *localPortfolioRepositoryHandler) List(ctx context.Context) ([]domain.SerializedPortfolio, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	portfolios, err := h.read()
	if err != nil {
		return nil, h.fail(folio_errors.StorageOperation_Load, "", err)
	}
	return portfolios, nil
}

func (h *localPortfolioRepositoryHandler) Delete(ctx context.Context, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	portfolios, err := h.read()
	if err != nil {
		return h.fail(folio_errors.StorageOperation_Delete, name, err)
	}

	kept := make([]domain.SerializedPortfolio, 0, len(portfolios))
	for _, p := range portfolios {
		if p.Name != name {
			kept = append(kept, p)
		}
	}

	if err := h.write(kept); err != nil {
		return h.fail(folio_errors.StorageOperation_Delete, name, err)
	}
	return nil
}

func (h *localPortfolioRepositoryHandler) Exists(ctx context.Context, name string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	portfolios, err := h.read()
	if err != nil {
		return false, h.fail(folio_errors.StorageOperation_Exists, name, err)
	}
	for _, p := range portfolios {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}
