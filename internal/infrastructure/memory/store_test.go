package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
	"github.com/jhoicas/Inventario-asociaciones/internal/infrastructure/memory"
)

const assoc = "assoc-a"

func newStore(t *testing.T, products ...string) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	_, err := s.Associations().CreateIfAbsent(ctx, &entity.Association{ID: assoc, Email: "a@asoc.org", Name: "A"})
	require.NoError(t, err)
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "cat", AssociationID: assoc, Name: "Granos"}))
	for _, id := range products {
		require.NoError(t, s.Products().Create(ctx, &entity.Product{
			ID: id, AssociationID: assoc, CategoryID: "cat", Name: id, Price: decimal.NewFromInt(1000),
		}))
		s.SetQuantity(id, 5)
	}
	return s
}

func movement(productID, typ string, qty int64) *entity.Transaction {
	return &entity.Transaction{
		ID: productID + "-" + typ, AssociationID: assoc, ProductID: productID, Type: typ, Quantity: qty, CreatedAt: time.Now(),
	}
}

func TestTxRunner_ReversionSoloDeshaceLoPropio(t *testing.T) {
	s := newStore(t, "p1", "p2")
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.TxRunner().Run(ctx, func(products repository.ProductRepository, txs repository.TransactionRepository) error {
		_, err := products.IncrementQuantity(ctx, assoc, "p1", 3)
		require.NoError(t, err)
		require.NoError(t, txs.Create(ctx, movement("p1", entity.TransactionTypeIN, 3)))

		// escrituras fuera de la transacción mientras sigue abierta
		s.SetQuantity("p2", 9)
		require.NoError(t, s.Products().Create(ctx, &entity.Product{
			ID: "p3", AssociationID: assoc, CategoryID: "cat", Name: "p3", Price: decimal.NewFromInt(1),
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, int64(5), s.Quantity("p1"))
	assert.Equal(t, int64(9), s.Quantity("p2"))
	p3, err := s.Products().GetByID(ctx, assoc, "p3")
	require.NoError(t, err)
	assert.NotNil(t, p3)
	assert.Empty(t, s.LedgerRows())
}

func TestTxRunner_ReversionConservaLibroPrevio(t *testing.T) {
	s := newStore(t, "p1")
	ctx := context.Background()
	require.NoError(t, s.Transactions().Create(ctx, movement("p1", entity.TransactionTypeIN, 5)))

	err := s.TxRunner().Run(ctx, func(products repository.ProductRepository, txs repository.TransactionRepository) error {
		_, err := products.DecrementQuantity(ctx, assoc, "p1", 2)
		require.NoError(t, err)
		require.NoError(t, txs.Create(ctx, movement("p1", entity.TransactionTypeOUT, 2)))
		_, err = products.DecrementQuantity(ctx, assoc, "p1", 10)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), s.Quantity("p1"))
	rows := s.LedgerRows()
	require.Len(t, rows, 1)
	assert.Equal(t, entity.TransactionTypeIN, rows[0].Type)
}

func TestProductRepo_DeleteConMovimientos(t *testing.T) {
	s := newStore(t, "p1", "p2")
	ctx := context.Background()
	require.NoError(t, s.Transactions().Create(ctx, movement("p1", entity.TransactionTypeIN, 5)))

	assert.ErrorIs(t, s.Products().Delete(ctx, assoc, "p1"), domain.ErrConflict)
	assert.Len(t, s.LedgerRows(), 1)
	assert.Equal(t, int64(5), s.Quantity("p1"))

	assert.NoError(t, s.Products().Delete(ctx, assoc, "p2"))
	assert.ErrorIs(t, s.Products().Delete(ctx, assoc, "p2"), domain.ErrNotFound)
}

func TestTransactionRepo_FalloInyectado(t *testing.T) {
	s := newStore(t, "p1")
	ctx := context.Background()
	fail := errors.New("disco lleno")

	s.SetFailTransactionCreate(fail)
	assert.ErrorIs(t, s.Transactions().Create(ctx, movement("p1", entity.TransactionTypeIN, 1)), fail)
	s.SetFailTransactionCreate(nil)
	assert.NoError(t, s.Transactions().Create(ctx, movement("p1", entity.TransactionTypeIN, 1)))
	assert.Len(t, s.LedgerRows(), 1)
}
