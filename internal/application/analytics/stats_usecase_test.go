package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-asociaciones/internal/application/analytics"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/tenant"
	"github.com/jhoicas/Inventario-asociaciones/internal/infrastructure/memory"
)

var scope = tenant.Scope{AssociationID: "assoc-a", Email: "a@asoc.org"}

type fakeGenerator struct {
	got analytics.StockReportData
	err error
}

func (g *fakeGenerator) GenerateStockReport(_ context.Context, data analytics.StockReportData) ([]byte, error) {
	g.got = data
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3"), nil
}

// seed crea dos asociaciones; la A con categorías Granos, Lácteos y Aseo (vacía).
func seed(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	for _, a := range []entity.Association{{ID: "assoc-a", Email: "a@asoc.org"}, {ID: "assoc-b", Email: "b@asoc.org"}} {
		a := a
		_, err := s.Associations().CreateIfAbsent(ctx, &a)
		require.NoError(t, err)
	}
	for _, c := range []entity.Category{
		{ID: "granos", AssociationID: "assoc-a", Name: "Granos"},
		{ID: "lacteos", AssociationID: "assoc-a", Name: "Lácteos"},
		{ID: "aseo", AssociationID: "assoc-a", Name: "Aseo"},
		{ID: "otra", AssociationID: "assoc-b", Name: "Otra"},
	} {
		c := c
		require.NoError(t, s.Categories().Create(ctx, &c))
	}
	products := []struct {
		id, assoc, cat, name string
		price                int64
		qty                  int64
	}{
		{"arroz", "assoc-a", "granos", "Arroz", 2500, 20},
		{"frijol", "assoc-a", "granos", "Frijol", 4000, 5},
		{"lenteja", "assoc-a", "granos", "Lenteja", 3000, 0},
		{"leche", "assoc-a", "lacteos", "Leche", 3200, 1},
		{"queso", "assoc-a", "lacteos", "Queso", 9000, 6},
		{"ajena", "assoc-b", "otra", "Ajena", 100, 2},
	}
	for _, p := range products {
		require.NoError(t, s.Products().Create(ctx, &entity.Product{
			ID: p.id, AssociationID: p.assoc, CategoryID: p.cat, Name: p.name, Price: decimal.NewFromInt(p.price),
		}))
		s.SetQuantity(p.id, p.qty)
	}
	return s
}

func newStats(s *memory.Store, gen analytics.StockReportGenerator) *analytics.StatsUseCase {
	return analytics.NewStatsUseCase(s.Stats(), s.Products(), s.Transactions(), gen)
}

func TestOverview(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	require.NoError(t, s.Transactions().Create(ctx, &entity.Transaction{ID: "t1", AssociationID: "assoc-a", ProductID: "arroz", Type: "IN", Quantity: 20}))
	require.NoError(t, s.Transactions().Create(ctx, &entity.Transaction{ID: "t2", AssociationID: "assoc-b", ProductID: "ajena", Type: "IN", Quantity: 2}))

	got, err := newStats(s, nil).Overview(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.TotalProducts)
	assert.Equal(t, int64(2), got.TotalCategories, "Aseo no tiene productos")
	assert.Equal(t, int64(1), got.TotalTransactions)
	// 2500*20 + 4000*5 + 0 + 3200*1 + 9000*6
	assert.True(t, decimal.NewFromInt(127200).Equal(got.StockValue), got.StockValue.String())
}

func TestOverview_SinAsociacion(t *testing.T) {
	got, err := newStats(seed(t), nil).Overview(context.Background(), tenant.Unresolved("x@y.org"))
	require.NoError(t, err)
	assert.Zero(t, got.TotalProducts)
	assert.True(t, got.StockValue.IsZero())
}

func TestCategoryDistribution_IncluyeVacias(t *testing.T) {
	got, err := newStats(seed(t), nil).CategoryDistribution(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Aseo", got[0].Name)
	assert.Equal(t, int64(0), got[0].Value)
	assert.Equal(t, "Granos", got[1].Name)
	assert.Equal(t, int64(3), got[1].Value)
	assert.Equal(t, "Lácteos", got[2].Name)
	assert.Equal(t, int64(2), got[2].Value)
}

func TestStockSummary_ParticionConUmbral(t *testing.T) {
	got, err := newStats(seed(t), nil).StockSummary(context.Background(), scope)
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.InStockCount)    // arroz 20, queso 6
	assert.Equal(t, int64(2), got.LowStockCount)   // frijol 5, leche 1
	assert.Equal(t, int64(1), got.OutOfStockCount) // lenteja 0
	assert.Equal(t, int64(5), got.InStockCount+got.LowStockCount+got.OutOfStockCount)

	require.Len(t, got.CriticalProducts, 3)
	assert.Equal(t, "Frijol", got.CriticalProducts[0].Name)
	assert.Equal(t, "Leche", got.CriticalProducts[1].Name)
	assert.Equal(t, "Lenteja", got.CriticalProducts[2].Name)
	assert.Equal(t, "Granos", got.CriticalProducts[0].CategoryName)
}

func TestStockSummary_SinAsociacion(t *testing.T) {
	got, err := newStats(seed(t), nil).StockSummary(context.Background(), tenant.Unresolved(""))
	require.NoError(t, err)
	assert.NotNil(t, got.CriticalProducts)
	assert.Empty(t, got.CriticalProducts)
}

func TestRecentTransactions(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, tx := range []entity.Transaction{
		{ID: "t1", ProductID: "arroz", Type: "IN", Quantity: 20},
		{ID: "t2", ProductID: "leche", Type: "IN", Quantity: 3},
		{ID: "t3", ProductID: "leche", Type: "OUT", Quantity: 2},
	} {
		tx := tx
		tx.AssociationID = "assoc-a"
		tx.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.Transactions().Create(ctx, &tx))
	}
	uc := newStats(s, nil)

	all, err := uc.RecentTransactions(ctx, scope, repository.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "t3", all[0].ID)
	assert.Equal(t, "Leche", all[0].ProductName)
	assert.Equal(t, "Lácteos", all[0].CategoryName)

	limited, err := uc.RecentTransactions(ctx, scope, repository.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	ins, err := uc.RecentTransactions(ctx, scope, repository.TransactionFilter{Type: "IN", ProductID: "leche"})
	require.NoError(t, err)
	require.Len(t, ins, 1)
	assert.Equal(t, "t2", ins[0].ID)

	_, err = uc.RecentTransactions(ctx, scope, repository.TransactionFilter{Type: "TRANSFER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	other, err := uc.RecentTransactions(ctx, tenant.Scope{AssociationID: "assoc-b"}, repository.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStockReportPDF(t *testing.T) {
	gen := &fakeGenerator{}
	pdf, name, err := newStats(seed(t), gen).StockReportPDF(context.Background(), scope)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Contains(t, name, "reporte_stock_")
	assert.Equal(t, "a@asoc.org", gen.got.AssociationEmail)
	assert.Len(t, gen.got.Products, 5)
	assert.Len(t, gen.got.Summary.CriticalProducts, 3)
	assert.Equal(t, int64(5), gen.got.Overview.TotalProducts)
}

func TestStockReportPDF_Errores(t *testing.T) {
	_, _, err := newStats(seed(t), &fakeGenerator{}).StockReportPDF(context.Background(), tenant.Unresolved("x@y.org"))
	assert.ErrorIs(t, err, domain.ErrAssociationNotFound)

	_, _, err = newStats(seed(t), &fakeGenerator{err: errors.New("fuente")}).StockReportPDF(context.Background(), scope)
	assert.Error(t, err)
}
