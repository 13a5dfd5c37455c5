package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Inventario-asociaciones/internal/application/inventory"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/usecase"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/tenant"
	"github.com/jhoicas/Inventario-asociaciones/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-asociaciones/pkg/logger"
)

const catalogo = `categoria;nombre;descripcion;precio;unidad;cantidad
Granos;Arroz;Arroz blanco;2500;kg;20

Lácteos;Leche;Entera;3200,50;l;
granos;Lentejas;;4100;kg;3
`

func TestParseCatalog_UTF8(t *testing.T) {
	rows, err := parseCatalog(strings.NewReader(catalogo))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Granos", rows[0].Category)
	assert.Equal(t, "Arroz", rows[0].Name)
	assert.Equal(t, "2500", rows[0].Price.String())
	assert.Equal(t, int64(20), rows[0].Quantity)

	assert.Equal(t, "Lácteos", rows[1].Category)
	assert.Equal(t, "3200.5", rows[1].Price.String())
	assert.Zero(t, rows[1].Quantity)
	assert.Equal(t, 4, rows[1].Line)
}

func TestParseCatalog_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Lácteos;Leche;Entera;3200;l;5\n")
	require.NoError(t, err)

	rows, err := parseCatalog(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lácteos", rows[0].Category)
}

func TestParseCatalog_Errores(t *testing.T) {
	cases := map[string]string{
		"precio":     "Granos;Arroz;;2500;kg;1\nGranos;Frijol;;abc;kg;1\n",
		"cantidad":   "Granos;Arroz;;2500;kg;-1\n",
		"columnas":   "Granos;Arroz\n",
		"sin nombre": "Granos;;;2500\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCatalog(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestImporter_CreaCategoriasProductosYStock(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	_, err := s.Associations().CreateIfAbsent(ctx, &entity.Association{ID: "assoc-a", Email: "a@asoc.org", Name: "A"})
	require.NoError(t, err)
	scope := tenant.Scope{AssociationID: "assoc-a", Email: "a@asoc.org"}

	categories := usecase.NewCategoryUseCase(s.Categories())
	imp := importer{
		categories: categories,
		products:   usecase.NewProductUseCase(s.Products(), s.Categories()),
		ledger:     inventory.NewStockLedgerUseCase(s.TxRunner(), s.Products(), nil, logger.Nop()),
	}

	rows, err := parseCatalog(strings.NewReader(catalogo))
	require.NoError(t, err)
	res, err := imp.run(ctx, scope, rows)
	require.NoError(t, err)

	assert.Equal(t, 2, res.categories, "granos y Granos son la misma categoría")
	assert.Equal(t, 3, res.products)
	assert.Equal(t, int64(23), res.units)

	cats, err := categories.List(ctx, scope)
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	ledger := s.LedgerRows()
	require.Len(t, ledger, 2, "solo las líneas con cantidad > 0 generan reposición")
	for _, tx := range ledger {
		assert.Equal(t, entity.TransactionTypeIN, tx.Type)
		assert.Equal(t, tx.Quantity, s.Quantity(tx.ProductID))
	}
}
