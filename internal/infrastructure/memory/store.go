// Package memory implementa los puertos de repositorio en memoria. Lo usan los tests de casos
// de uso y de handlers; respeta el aislamiento por asociación y la atomicidad de TxRunner.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	associations map[string]*entity.Association
	categories   map[string]*entity.Category
	products     map[string]*entity.Product
	transactions []*entity.Transaction

	// FailTransactionCreate, si no es nil, lo devuelve TransactionRepository.Create.
	// Fijarlo con SetFailTransactionCreate si hay goroutines usando el store.
	FailTransactionCreate error
	// BeforeDecrement se invoca al inicio de cada DecrementQuantity (simula concurrencia).
	BeforeDecrement func(productID string)
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		associations: map[string]*entity.Association{},
		categories:   map[string]*entity.Category{},
		products:     map[string]*entity.Product{},
	}
}

func (s *Store) Associations() *AssociationRepo { return &AssociationRepo{s: s} }
func (s *Store) Categories() *CategoryRepo      { return &CategoryRepo{s: s} }
func (s *Store) Products() *ProductRepo         { return &ProductRepo{s: s} }
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }
func (s *Store) Stats() *StatsRepo              { return &StatsRepo{s: s} }
func (s *Store) TxRunner() *TxRunner            { return &TxRunner{s: s} }

// SetQuantity fija el stock de un producto sin pasar por el libro (solo para preparar escenarios).
func (s *Store) SetQuantity(productID string, q int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[productID]; ok {
		p.Quantity = q
	}
}

// SetFailTransactionCreate fija FailTransactionCreate bajo el lock del store.
func (s *Store) SetFailTransactionCreate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FailTransactionCreate = err
}

// Quantity devuelve el stock actual del producto (0 si no existe).
func (s *Store) Quantity(productID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[productID]; ok {
		return p.Quantity
	}
	return 0
}

// LedgerRows devuelve una copia de todas las transacciones en orden de inserción.
func (s *Store) LedgerRows() []entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, *t)
	}
	return out
}

// ─── TxRunner ────────────────────────────────────────────────────────────────

// TxRunner ejecuta fn de forma serializada; si fn devuelve error se deshacen solo los cambios
// hechos a través de los repositorios de esa transacción.
type TxRunner struct{ s *Store }

func (r *TxRunner) Run(ctx context.Context, fn func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	tx := &txLog{deltas: map[string]int64{}, appended: map[*entity.Transaction]struct{}{}}
	if err := fn(&ProductRepo{s: r.s, tx: tx}, &TransactionRepo{s: r.s, tx: tx}); err != nil {
		r.s.rollback(tx)
		return err
	}
	return nil
}

// txLog registra lo escrito dentro de un Run: delta neto de stock por producto y filas agregadas.
type txLog struct {
	deltas   map[string]int64
	appended map[*entity.Transaction]struct{}
}

func (s *Store) rollback(tx *txLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range tx.deltas {
		if p, ok := s.products[id]; ok {
			p.Quantity -= d
		}
	}
	if len(tx.appended) == 0 {
		return
	}
	kept := s.transactions[:0:0]
	for _, t := range s.transactions {
		if _, ok := tx.appended[t]; !ok {
			kept = append(kept, t)
		}
	}
	s.transactions = kept
}

// ─── Associations ────────────────────────────────────────────────────────────

type AssociationRepo struct{ s *Store }

var _ repository.AssociationRepository = (*AssociationRepo)(nil)

func (r *AssociationRepo) GetByEmail(_ context.Context, email string) (*entity.Association, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.associations {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, nil
}

func (r *AssociationRepo) CreateIfAbsent(_ context.Context, a *entity.Association) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.associations {
		if existing.Email == a.Email {
			return false, nil
		}
	}
	cp := *a
	r.s.associations[a.ID] = &cp
	return true, nil
}

// ─── Categories ──────────────────────────────────────────────────────────────

type CategoryRepo struct{ s *Store }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.associations[c.AssociationID]; !ok {
		return domain.ErrAssociationNotFound
	}
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, associationID, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok || c.AssociationID != associationID {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.categories[c.ID]
	if !ok || existing.AssociationID != c.AssociationID {
		return domain.ErrNotFound
	}
	existing.Name = c.Name
	existing.Description = c.Description
	existing.UpdatedAt = c.UpdatedAt
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, associationID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok || c.AssociationID != associationID {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepo) ListByAssociation(_ context.Context, associationID string) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.s.categories {
		if c.AssociationID == associationID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ─── Products ────────────────────────────────────────────────────────────────

type ProductRepo struct {
	s  *Store
	tx *txLog
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[p.CategoryID]
	if !ok || c.AssociationID != p.AssociationID {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, associationID, id string) (*entity.ProductWithCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.AssociationID != associationID {
		return nil, nil
	}
	return r.s.withCategory(p), nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[p.ID]
	if !ok || existing.AssociationID != p.AssociationID {
		return domain.ErrNotFound
	}
	existing.Name = p.Name
	existing.Description = p.Description
	existing.Price = p.Price
	existing.ImageURL = p.ImageURL
	existing.Unit = p.Unit
	existing.UpdatedAt = p.UpdatedAt
	return nil
}

// Delete rechaza con domain.ErrConflict un producto con movimientos en el libro.
func (r *ProductRepo) Delete(_ context.Context, associationID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.AssociationID != associationID {
		return domain.ErrNotFound
	}
	for _, t := range r.s.transactions {
		if t.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) List(_ context.Context, associationID string, filter repository.ProductFilter) ([]*entity.ProductWithCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []*entity.ProductWithCategory
	for _, p := range r.s.products {
		if p.AssociationID != associationID {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, r.s.withCategory(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) IncrementQuantity(_ context.Context, associationID, id string, qty int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.AssociationID != associationID {
		return 0, domain.ErrNotFound
	}
	p.Quantity += qty
	r.track(id, qty)
	return p.Quantity, nil
}

func (r *ProductRepo) DecrementQuantity(_ context.Context, associationID, id string, qty int64) (int64, error) {
	r.s.mu.Lock()
	hook := r.s.BeforeDecrement
	r.s.mu.Unlock()
	if hook != nil {
		hook(id)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.AssociationID != associationID {
		return 0, domain.ErrNotFound
	}
	if p.Quantity < qty {
		return 0, domain.ErrInsufficientStock
	}
	p.Quantity -= qty
	r.track(id, -qty)
	return p.Quantity, nil
}

// track requiere s.mu tomado.
func (r *ProductRepo) track(id string, delta int64) {
	if r.tx != nil {
		r.tx.deltas[id] += delta
	}
}

// withCategory requiere s.mu tomado.
func (s *Store) withCategory(p *entity.Product) *entity.ProductWithCategory {
	out := &entity.ProductWithCategory{Product: *p}
	if c, ok := s.categories[p.CategoryID]; ok {
		out.CategoryName = c.Name
	}
	return out
}

// ─── Transactions ────────────────────────────────────────────────────────────

type TransactionRepo struct {
	s  *Store
	tx *txLog
}

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailTransactionCreate != nil {
		return r.s.FailTransactionCreate
	}
	p, ok := r.s.products[t.ProductID]
	if !ok || p.AssociationID != t.AssociationID {
		return domain.ErrNotFound
	}
	cp := *t
	r.s.transactions = append(r.s.transactions, &cp)
	if r.tx != nil {
		r.tx.appended[&cp] = struct{}{}
	}
	return nil
}

func (r *TransactionRepo) List(_ context.Context, associationID string, filter repository.TransactionFilter) ([]*entity.TransactionDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TransactionDetail
	// recorrido inverso: a igual fecha, la última insertada va primero
	for i := len(r.s.transactions) - 1; i >= 0; i-- {
		t := r.s.transactions[i]
		if t.AssociationID != associationID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.ProductID != "" && t.ProductID != filter.ProductID {
			continue
		}
		d := &entity.TransactionDetail{Transaction: *t}
		if p, ok := r.s.products[t.ProductID]; ok {
			pc := r.s.withCategory(p)
			d.ProductName = pc.Name
			d.CategoryName = pc.CategoryName
			d.ImageURL = pc.ImageURL
			d.Price = pc.Price
			d.Unit = pc.Unit
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// ─── Stats ───────────────────────────────────────────────────────────────────

type StatsRepo struct{ s *Store }

var _ repository.StatsRepository = (*StatsRepo)(nil)

func (r *StatsRepo) GetProductAggregates(_ context.Context, associationID string) (repository.ProductAggregates, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	agg := repository.ProductAggregates{StockValue: decimal.Zero}
	used := map[string]struct{}{}
	for _, p := range r.s.products {
		if p.AssociationID != associationID {
			continue
		}
		agg.TotalProducts++
		used[p.CategoryID] = struct{}{}
		agg.StockValue = agg.StockValue.Add(p.Price.Mul(decimal.NewFromInt(p.Quantity)))
	}
	agg.CategoriesInUse = int64(len(used))
	return agg, nil
}

func (r *StatsRepo) CountTransactions(_ context.Context, associationID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.transactions {
		if t.AssociationID == associationID {
			n++
		}
	}
	return n, nil
}

func (r *StatsRepo) GetCategoryDistribution(_ context.Context, associationID string) ([]repository.CategoryCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.CategoryCount
	for _, c := range r.s.categories {
		if c.AssociationID != associationID {
			continue
		}
		cc := repository.CategoryCount{CategoryID: c.ID, Name: c.Name}
		for _, p := range r.s.products {
			if p.CategoryID == c.ID {
				cc.Products++
			}
		}
		out = append(out, cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
