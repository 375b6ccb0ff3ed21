package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storelink/catalog-api/internal/api/metrics"
	"github.com/storelink/catalog-api/internal/core/domain"
	"github.com/storelink/catalog-api/internal/core/ports"
)

// actorSystem names the acting user on mutations that happen without an
// authenticated context.
const actorSystem = "System"

// ProductService implements the catalog use cases. The notifier is an
// optional capability: nil means no real-time sink is configured, and
// emission failures never affect the mutation result.
type ProductService struct {
	repo     ports.ProductRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, notifier ports.Notifier, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, notifier: notifier, log: log}
}

func (s *ProductService) List(ctx context.Context, filter ports.ListProductsFilter) ([]*domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput, actor string) (*domain.Product, error) {
	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Category:    in.Category,
		InStock:     inStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, product)
	if err != nil {
		s.log.Error().Err(err).Str("name", in.Name).Msg("failed to create product")
		return nil, err
	}

	metrics.ProductMutationsTotal.WithLabelValues("create").Inc()
	s.log.Info().Str("product_id", created.ID).Str("category", created.Category).Msg("product created")

	s.emit(domain.ProductEvent{
		Type:    domain.EventProductCreated,
		Message: "New product added: " + created.Name,
		Product: created,
		User:    actorOrSystem(actor),
	})
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch, actor string) (*domain.Product, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	metrics.ProductMutationsTotal.WithLabelValues("update").Inc()
	s.log.Info().Str("product_id", updated.ID).Msg("product updated")

	s.emit(domain.ProductEvent{
		Type:    domain.EventProductUpdated,
		Message: "Product updated: " + updated.Name,
		Product: updated,
		User:    actorOrSystem(actor),
	})
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string, actor string) (*domain.Product, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()
	s.log.Info().Str("product_id", deleted.ID).Msg("product deleted")

	s.emit(domain.ProductEvent{
		Type:      domain.EventProductDeleted,
		Message:   "Product deleted: " + deleted.Name,
		ProductID: deleted.ID,
		User:      actorOrSystem(actor),
	})
	return deleted, nil
}

// emit hands the event to the notifier, stamping the emission time. The
// call never blocks and a missing notifier is silently fine.
func (s *ProductService) emit(event domain.ProductEvent) {
	if s.notifier == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.notifier.Notify(event)
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return actorSystem
	}
	return actor
}
