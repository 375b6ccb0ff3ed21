package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storelink/catalog-api/internal/core/domain"
	"github.com/storelink/catalog-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository (mirrors the Mongo repository's behaviour)
// ---------------------------------------------------------------------------

var hexID = regexp.MustCompile(`^[0-9a-f]{24}$`)

type stubProductRepo struct {
	byID      map[string]*domain.Product
	nextID    int
	insertErr error // if set, Insert returns this error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

func (r *stubProductRepo) Insert(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.nextID++
	stored := cloneProduct(p)
	stored.ID = fmt.Sprintf("%024x", r.nextID)
	r.byID[stored.ID] = stored
	return cloneProduct(stored), nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	if !hexID.MatchString(id) {
		return nil, domain.ErrInvalidProductID
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

// List applies the same filters the real Mongo query would use.
func (r *stubProductRepo) List(_ context.Context, f ports.ListProductsFilter) ([]*domain.Product, error) {
	var matched []*domain.Product
	for _, p := range r.byID {
		if f.Category != "" && !strings.Contains(strings.ToLower(p.Category), strings.ToLower(f.Category)) {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.InStock != nil && p.InStock != *f.InStock {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if !hexID.MatchString(id) {
		return nil, domain.ErrInvalidProductID
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	p.UpdatedAt = time.Now().UTC()
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) (*domain.Product, error) {
	if !hexID.MatchString(id) {
		return nil, domain.ErrInvalidProductID
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return p, nil
}

// recordingNotifier captures emitted events for assertions.
type recordingNotifier struct {
	events []domain.ProductEvent
}

func (n *recordingNotifier) Notify(event domain.ProductEvent) {
	n.events = append(n.events, event)
}

func newProductService(repo ports.ProductRepository, notifier ports.Notifier) *ProductService {
	return NewProductService(repo, notifier, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestProductService_Create_DefaultsAndNotifies(t *testing.T) {
	repo := newStubProductRepo()
	notifier := &recordingNotifier{}
	svc := newProductService(repo, notifier)

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name: "Laptop", Price: 999.99, Category: "Electronics",
	}, "alice")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !created.InStock {
		t.Fatalf("expected inStock to default to true")
	}
	if created.CreatedAt.IsZero() || !created.UpdatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected timestamps set and equal on create, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	if len(notifier.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(notifier.events))
	}
	event := notifier.events[0]
	if event.Type != domain.EventProductCreated {
		t.Fatalf("expected %s, got %s", domain.EventProductCreated, event.Type)
	}
	if event.Product == nil || event.Product.ID != created.ID {
		t.Fatalf("event must carry the created product")
	}
	if event.User != "alice" {
		t.Fatalf("expected actor alice, got %q", event.User)
	}
	if event.Timestamp.IsZero() {
		t.Fatalf("event timestamp not stamped")
	}
}

func TestProductService_Create_SystemActorWhenUnauthenticated(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newProductService(newStubProductRepo(), notifier)

	if _, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name: "Book", Price: 10, Category: "Books",
	}, ""); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if notifier.events[0].User != "System" {
		t.Fatalf("expected System actor, got %q", notifier.events[0].User)
	}
}

func TestProductService_Create_NilNotifier(t *testing.T) {
	svc := newProductService(newStubProductRepo(), nil)

	if _, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name: "Book", Price: 10, Category: "Books",
	}, ""); err != nil {
		t.Fatalf("mutation must succeed without a notifier: %v", err)
	}
}

func TestProductService_Create_RepoError(t *testing.T) {
	repo := newStubProductRepo()
	repo.insertErr = errors.New("connection reset")
	notifier := &recordingNotifier{}
	svc := newProductService(repo, notifier)

	if _, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name: "Book", Price: 10, Category: "Books",
	}, ""); err == nil {
		t.Fatalf("expected error from repository")
	}
	if len(notifier.events) != 0 {
		t.Fatalf("no event may be emitted for a failed mutation")
	}
}

func TestProductService_Update_PartialMerge(t *testing.T) {
	repo := newStubProductRepo()
	notifier := &recordingNotifier{}
	svc := newProductService(repo, notifier)

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name: "Laptop", Price: 999.99, Description: "workstation", Category: "Electronics",
	}, "alice")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	price := 50.0
	updated, err := svc.Update(context.Background(), created.ID, domain.ProductPatch{Price: &price}, "alice")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Price != 50.0 {
		t.Fatalf("expected price 50, got %v", updated.Price)
	}
	if updated.Name != "Laptop" || updated.Category != "Electronics" || updated.Description != "workstation" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updatedAt not refreshed: %v <= %v", updated.UpdatedAt, created.UpdatedAt)
	}

	last := notifier.events[len(notifier.events)-1]
	if last.Type != domain.EventProductUpdated || last.Product == nil || last.Product.Price != 50.0 {
		t.Fatalf("unexpected update event: %+v", last)
	}
}

func TestProductService_Update_InvalidID(t *testing.T) {
	svc := newProductService(newStubProductRepo(), nil)

	price := 10.0
	if _, err := svc.Update(context.Background(), "not-an-id", domain.ProductPatch{Price: &price}, ""); !errors.Is(err, domain.ErrInvalidProductID) {
		t.Fatalf("expected ErrInvalidProductID, got %v", err)
	}
}

func TestProductService_Delete_ReturnsPriorRecordAndNotifies(t *testing.T) {
	repo := newStubProductRepo()
	notifier := &recordingNotifier{}
	svc := newProductService(repo, notifier)

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name: "Laptop", Price: 999.99, Category: "Electronics",
	}, "alice")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), created.ID, "alice")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != created.ID || deleted.Name != "Laptop" {
		t.Fatalf("expected the prior record, got %+v", deleted)
	}

	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}

	last := notifier.events[len(notifier.events)-1]
	if last.Type != domain.EventProductDeleted || last.ProductID != created.ID {
		t.Fatalf("unexpected delete event: %+v", last)
	}
}

func TestProductService_List_CategorySubstringCaseInsensitive(t *testing.T) {
	svc := newProductService(newStubProductRepo(), nil)

	for _, p := range []ports.CreateProductInput{
		{Name: "Laptop", Price: 999, Category: "Electronics"},
		{Name: "Phone", Price: 699, Category: "Electronics"},
		{Name: "Novel", Price: 12, Category: "Books"},
	} {
		if _, err := svc.Create(context.Background(), p, ""); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	results, err := svc.List(context.Background(), ports.ListProductsFilter{Category: "elect"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 electronics, got %d", len(results))
	}
	for _, p := range results {
		if p.Category != "Electronics" {
			t.Fatalf("unexpected category %q in results", p.Category)
		}
	}
}

func TestProductService_List_ComposedFiltersAndOrdering(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, nil)

	// Stagger created_at so ordering is observable.
	base := time.Now().UTC().Add(-time.Hour)
	inStock := []bool{true, true, false}
	prices := []float64{100, 300, 200}
	for i := 0; i < 3; i++ {
		repo.nextID++
		id := fmt.Sprintf("%024x", repo.nextID)
		repo.byID[id] = &domain.Product{
			ID:        id,
			Name:      fmt.Sprintf("Gadget %d", i),
			Price:     prices[i],
			Category:  "Electronics",
			InStock:   inStock[i],
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}

	all, err := svc.List(context.Background(), ports.ListProductsFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Fatalf("results not ordered newest-first")
		}
	}

	// inStock AND price range compose.
	wantInStock := true
	min, max := 50.0, 250.0
	filtered, err := svc.List(context.Background(), ports.ListProductsFilter{
		InStock: &wantInStock, MinPrice: &min, MaxPrice: &max,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Price != 100 {
		t.Fatalf("expected only the in-stock product at 100, got %+v", filtered)
	}
}

func TestProductService_Get_InvalidIDDistinctFromNotFound(t *testing.T) {
	svc := newProductService(newStubProductRepo(), nil)

	if _, err := svc.Get(context.Background(), "zzz"); !errors.Is(err, domain.ErrInvalidProductID) {
		t.Fatalf("expected ErrInvalidProductID, got %v", err)
	}
	if _, err := svc.Get(context.Background(), fmt.Sprintf("%024x", 999)); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
