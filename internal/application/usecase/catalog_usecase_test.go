package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/inventory"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/usecase"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/tenant"
	"github.com/jhoicas/Inventario-asociaciones/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-asociaciones/pkg/logger"
)

var (
	scopeA     = tenant.Scope{AssociationID: "assoc-a", Email: "a@asoc.org"}
	scopeB     = tenant.Scope{AssociationID: "assoc-b", Email: "b@asoc.org"}
	unresolved = tenant.Unresolved("x@y.org")
)

func newCatalog(t *testing.T) (*memory.Store, *usecase.CategoryUseCase, *usecase.ProductUseCase) {
	t.Helper()
	s := memory.NewStore()
	for _, a := range []entity.Association{{ID: "assoc-a", Email: "a@asoc.org"}, {ID: "assoc-b", Email: "b@asoc.org"}} {
		a := a
		_, err := s.Associations().CreateIfAbsent(context.Background(), &a)
		require.NoError(t, err)
	}
	return s, usecase.NewCategoryUseCase(s.Categories()), usecase.NewProductUseCase(s.Products(), s.Categories())
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_CRUD(t *testing.T) {
	_, cats, _ := newCatalog(t)
	ctx := context.Background()

	c, err := cats.Create(ctx, scopeA, dto.CategoryRequest{Name: " Granos ", Description: "secos"})
	require.NoError(t, err)
	assert.Equal(t, "Granos", c.Name)
	assert.Equal(t, "assoc-a", c.AssociationID)

	upd, err := cats.Update(ctx, scopeA, c.ID, dto.CategoryRequest{Name: "Granos y cereales"})
	require.NoError(t, err)
	assert.Equal(t, "Granos y cereales", upd.Name)

	list, err := cats.List(ctx, scopeA)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, cats.Delete(ctx, scopeA, c.ID))
	list, err = cats.List(ctx, scopeA)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategory_AislamientoEntreAsociaciones(t *testing.T) {
	_, cats, _ := newCatalog(t)
	ctx := context.Background()
	c, err := cats.Create(ctx, scopeA, dto.CategoryRequest{Name: "Granos"})
	require.NoError(t, err)

	_, err = cats.Update(ctx, scopeB, c.ID, dto.CategoryRequest{Name: "Robada"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, cats.Delete(ctx, scopeB, c.ID), domain.ErrNotFound)

	listB, err := cats.List(ctx, scopeB)
	require.NoError(t, err)
	assert.Empty(t, listB)

	listA, err := cats.List(ctx, scopeA)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, "Granos", listA[0].Name)
}

func TestCategory_Validaciones(t *testing.T) {
	_, cats, _ := newCatalog(t)
	ctx := context.Background()

	_, err := cats.Create(ctx, scopeA, dto.CategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = cats.Create(ctx, unresolved, dto.CategoryRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrAssociationNotFound)

	list, err := cats.List(ctx, unresolved)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCategory_DeleteConProductosEsConflicto(t *testing.T) {
	_, cats, products := newCatalog(t)
	ctx := context.Background()
	c, err := cats.Create(ctx, scopeA, dto.CategoryRequest{Name: "Granos"})
	require.NoError(t, err)
	_, err = products.Create(ctx, scopeA, dto.CreateProductRequest{Name: "Arroz", CategoryID: c.ID, Price: decimal.NewFromInt(2500)})
	require.NoError(t, err)

	assert.ErrorIs(t, cats.Delete(ctx, scopeA, c.ID), domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CreaConCantidadCero(t *testing.T) {
	_, cats, products := newCatalog(t)
	ctx := context.Background()
	c, err := cats.Create(ctx, scopeA, dto.CategoryRequest{Name: "Granos"})
	require.NoError(t, err)

	p, err := products.Create(ctx, scopeA, dto.CreateProductRequest{
		Name: "Arroz", CategoryID: c.ID, Price: decimal.RequireFromString("2500.50"), Unit: "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Quantity)
	assert.Equal(t, "Granos", p.CategoryName)

	got, err := products.GetByID(ctx, scopeA, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("2500.50").Equal(got.Price))
}

func TestProduct_Validaciones(t *testing.T) {
	_, cats, products := newCatalog(t)
	ctx := context.Background()
	c, err := cats.Create(ctx, scopeA, dto.CategoryRequest{Name: "Granos"})
	require.NoError(t, err)
	cb, err := cats.Create(ctx, scopeB, dto.CategoryRequest{Name: "Ajena"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		scope tenant.Scope
		in    dto.CreateProductRequest
		want  error
	}{
		{"sin nombre", scopeA, dto.CreateProductRequest{CategoryID: c.ID, Price: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"sin categoría", scopeA, dto.CreateProductRequest{Name: "X", Price: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"precio cero", scopeA, dto.CreateProductRequest{Name: "X", CategoryID: c.ID}, domain.ErrInvalidInput},
		{"sin asociación", unresolved, dto.CreateProductRequest{Name: "X", CategoryID: c.ID, Price: decimal.NewFromInt(1)}, domain.ErrAssociationNotFound},
		{"categoría de otra asociación", scopeA, dto.CreateProductRequest{Name: "X", CategoryID: cb.ID, Price: decimal.NewFromInt(1)}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := products.Create(ctx, tt.scope, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProduct_UpdateNoTocaCantidad(t *testing.T) {
	s, cats, products := newCatalog(t)
	ctx := context.Background()
	c, err := cats.Create(ctx, scopeA, dto.CategoryRequest{Name: "Granos"})
	require.NoError(t, err)
	p, err := products.Create(ctx, scopeA, dto.CreateProductRequest{Name: "Arroz", CategoryID: c.ID, Price: decimal.NewFromInt(2500), Unit: "kg"})
	require.NoError(t, err)
	s.SetQuantity(p.ID, 12)

	upd, err := products.Update(ctx, scopeA, p.ID, dto.UpdateProductRequest{Name: "Arroz blanco", Price: decimal.NewFromInt(2700)})
	require.NoError(t, err)
	assert.Equal(t, "Arroz blanco", upd.Name)
	assert.Equal(t, "kg", upd.Unit, "unidad vacía conserva la anterior")
	assert.Equal(t, int64(12), s.Quantity(p.ID))

	_, err = products.Update(ctx, scopeB, p.ID, dto.UpdateProductRequest{Name: "Robado", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_ListYDelete(t *testing.T) {
	_, cats, products := newCatalog(t)
	ctx := context.Background()
	granos, err := cats.Create(ctx, scopeA, dto.CategoryRequest{Name: "Granos"})
	require.NoError(t, err)
	lacteos, err := cats.Create(ctx, scopeA, dto.CategoryRequest{Name: "Lácteos"})
	require.NoError(t, err)
	for _, in := range []dto.CreateProductRequest{
		{Name: "Arroz", CategoryID: granos.ID, Price: decimal.NewFromInt(1)},
		{Name: "Arroz integral", CategoryID: granos.ID, Price: decimal.NewFromInt(1)},
		{Name: "Leche", CategoryID: lacteos.ID, Price: decimal.NewFromInt(1)},
	} {
		_, err := products.Create(ctx, scopeA, in)
		require.NoError(t, err)
	}

	all, err := products.List(ctx, scopeA, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCat, err := products.List(ctx, scopeA, repository.ProductFilter{CategoryID: lacteos.ID})
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "Leche", byCat[0].Name)

	search, err := products.List(ctx, scopeA, repository.ProductFilter{Search: "ARROZ"})
	require.NoError(t, err)
	assert.Len(t, search, 2)

	none, err := products.List(ctx, unresolved, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.ErrorIs(t, products.Delete(ctx, scopeB, byCat[0].ID), domain.ErrNotFound)
	require.NoError(t, products.Delete(ctx, scopeA, byCat[0].ID))
	got, err := products.GetByID(ctx, scopeA, byCat[0].ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProduct_DeleteConMovimientosConservaLibro(t *testing.T) {
	s, cats, products := newCatalog(t)
	ctx := context.Background()
	c, err := cats.Create(ctx, scopeA, dto.CategoryRequest{Name: "Granos"})
	require.NoError(t, err)
	p, err := products.Create(ctx, scopeA, dto.CreateProductRequest{Name: "Arroz", CategoryID: c.ID, Price: decimal.NewFromInt(2500)})
	require.NoError(t, err)

	ledger := inventory.NewStockLedgerUseCase(s.TxRunner(), s.Products(), nil, logger.Nop())
	_, err = ledger.Replenish(ctx, scopeA, p.ID, 10)
	require.NoError(t, err)
	require.True(t, ledger.Deduct(ctx, scopeA, []dto.OrderItem{{ProductID: p.ID, Quantity: 4}}).Success)
	require.Len(t, s.LedgerRows(), 2)

	assert.ErrorIs(t, products.Delete(ctx, scopeA, p.ID), domain.ErrConflict)
	assert.Len(t, s.LedgerRows(), 2)
	got, err := products.GetByID(ctx, scopeA, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(6), got.Quantity)
}
