package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/catalog"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Search(q string, limit int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Update(p *entity.Product, expectedVersion *int64) error {
	existing, ok := r.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if expectedVersion != nil && existing.Version != *expectedVersion {
		return domain.ErrConflict
	}
	p.Version = existing.Version + 1
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.products[id], nil }

func (r *fakeProductRepo) ApplyStockDelta(id string, delta int64) (int64, error) {
	p, ok := r.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.Stock += delta
	p.Version++
	return p.Stock, nil
}

func (r *fakeProductRepo) UpdatePricing(id string, cost, price *decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cost != nil {
		p.Cost = *cost
	}
	if price != nil {
		p.Price = *price
	}
	p.Version++
	return nil
}

type fakeTxRunner struct {
	productRepo repository.ProductRepository
}

func (r *fakeTxRunner) RunCatalog(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	return fn(r.productRepo)
}

func buildUseCase(products ...*entity.Product) (*catalog.UseCase, *fakeProductRepo) {
	repo := newFakeProductRepo(products...)
	return catalog.NewUseCase(&fakeTxRunner{productRepo: repo}, repo), repo
}

func strPtr(s string) *string { return &s }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreate_MinStockPorDefecto(t *testing.T) {
	uc, repo := buildUseCase()

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "Café molido 500g",
		Price: money("8.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.MinStock)
	assert.Equal(t, int64(1), out.Version)
	assert.NotNil(t, repo.products[out.ID])
}

func TestUpdate_VersionCondicional(t *testing.T) {
	uc, repo := buildUseCase(&entity.Product{
		ID: "p1", Name: "Azúcar", Price: money("2.00"), Version: 3, Active: true,
	})
	ctx := context.Background()

	stale := int64(2)
	err := uc.Update(ctx, "p1", dto.UpdateProductRequest{
		Name: "Azúcar refinada", Price: money("2.10"), ExpectedVersion: &stale,
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "versión desfasada debe chocar")

	current := int64(3)
	err = uc.Update(ctx, "p1", dto.UpdateProductRequest{
		Name: "Azúcar refinada", Price: money("2.10"), ExpectedVersion: &current,
	})
	require.NoError(t, err)
	assert.Equal(t, "Azúcar refinada", repo.products["p1"].Name)
	assert.Equal(t, int64(4), repo.products["p1"].Version, "cada escritura sube la versión")
}

func TestQuickReceive_SumaStockYActualizaPrecios(t *testing.T) {
	uc, repo := buildUseCase(&entity.Product{
		ID: "p1", Name: "Leche", Barcode: strPtr("7501"), Price: money("1.00"),
		Cost: money("0.60"), Stock: 2, Version: 1, Active: true,
	})

	newCost := money("0.70")
	out, err := uc.QuickReceive(context.Background(), dto.QuickReceiveRequest{
		Barcode:  "7501",
		Quantity: 12,
		NewCost:  &newCost,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(14), out.Stock)
	assert.True(t, repo.products["p1"].Cost.Equal(money("0.70")))
	assert.True(t, repo.products["p1"].Price.Equal(money("1.00")), "el precio no cambia si no se manda")
}

func TestQuickReceive_CodigoDesconocido(t *testing.T) {
	uc, _ := buildUseCase()
	_, err := uc.QuickReceive(context.Background(), dto.QuickReceiveRequest{Barcode: "0000", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuickReceive_EntradaInvalida(t *testing.T) {
	uc, _ := buildUseCase()
	_, err := uc.QuickReceive(context.Background(), dto.QuickReceiveRequest{Barcode: "7501", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
