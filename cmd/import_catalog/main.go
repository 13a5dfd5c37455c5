// import_catalog carga categorías y productos de una asociación desde un CSV.
//
// Uso: go run ./cmd/import_catalog <email-asociacion> <catalogo.csv>
//
// Formato (separador ';', UTF-8 o ISO-8859-1):
//
//	categoria;nombre;descripcion;precio;unidad;cantidad
//
// Las categorías se crean si no existen. La cantidad inicial se registra como reposición,
// de modo que el libro de transacciones coincide con el stock.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/inventory"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/usecase"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/tenant"
	"github.com/jhoicas/Inventario-asociaciones/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-asociaciones/pkg/config"
	"github.com/jhoicas/Inventario-asociaciones/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: import_catalog <email-asociacion> <catalogo.csv>")
		os.Exit(2)
	}
	email, path := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "import_catalog"})

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("abrir CSV")
	}
	rows, err := parseCatalog(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	associationUC := usecase.NewAssociationUseCase(postgres.NewAssociationRepository(pool), log)
	scope, err := associationUC.ResolveScope(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Msg("resolver asociación")
	}
	if !scope.Resolved() {
		log.Fatal().Str("email", email).Msg("no existe asociación para el email")
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	imp := importer{
		categories: usecase.NewCategoryUseCase(categoryRepo),
		products:   usecase.NewProductUseCase(productRepo, categoryRepo),
		ledger:     inventory.NewStockLedgerUseCase(postgres.NewTxRunner(pool), productRepo, nil, log),
	}
	res, err := imp.run(ctx, scope, rows)
	if err != nil {
		log.Fatal().Err(err).Msg("importar catálogo")
	}
	log.Info().
		Int("categorias", res.categories).
		Int("productos", res.products).
		Int64("unidades", res.units).
		Msg("catálogo importado")
}

type importer struct {
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	ledger     *inventory.StockLedgerUseCase
}

type importResult struct {
	categories int
	products   int
	units      int64
}

// run crea las categorías faltantes (por nombre, sin distinguir mayúsculas) y luego los productos.
// Se detiene en la primera línea que falle; lo importado hasta ahí queda.
func (imp importer) run(ctx context.Context, scope tenant.Scope, rows []row) (importResult, error) {
	var res importResult
	existing, err := imp.categories.List(ctx, scope)
	if err != nil {
		return res, err
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	for _, r := range rows {
		key := strings.ToLower(r.Category)
		categoryID, ok := byName[key]
		if !ok {
			c, err := imp.categories.Create(ctx, scope, dto.CategoryRequest{Name: r.Category})
			if err != nil {
				return res, fmt.Errorf("línea %d: crear categoría %q: %w", r.Line, r.Category, err)
			}
			categoryID = c.ID
			byName[key] = categoryID
			res.categories++
		}

		p, err := imp.products.Create(ctx, scope, dto.CreateProductRequest{
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			CategoryID:  categoryID,
			Unit:        r.Unit,
		})
		if errors.Is(err, domain.ErrInvalidInput) {
			return res, fmt.Errorf("línea %d: producto %q inválido", r.Line, r.Name)
		}
		if err != nil {
			return res, fmt.Errorf("línea %d: crear producto %q: %w", r.Line, r.Name, err)
		}
		res.products++

		if r.Quantity > 0 {
			if _, err := imp.ledger.Replenish(ctx, scope, p.ID, r.Quantity); err != nil {
				return res, fmt.Errorf("línea %d: stock inicial de %q: %w", r.Line, r.Name, err)
			}
			res.units += r.Quantity
		}
	}
	return res, nil
}
