package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/tenant"
	"github.com/jhoicas/Inventario-asociaciones/pkg/logger"
)

// Mensajes de la salida de stock (se muestran tal cual al usuario).
const (
	msgDeductOK        = "salida confirmada con éxito"
	msgNoAssociation   = "no se encontró ninguna asociación para este email"
	msgEmptyOrder      = "la salida no contiene productos"
	msgDeductInternal  = "ocurrió un error al registrar la salida"
	fmtProductNotFound = "producto con ID %s no encontrado"
	fmtInvalidQuantity = "cantidad inválida para \"%s\""
	fmtInsufficient    = "stock insuficiente para \"%s\". Solicitado: %d, Disponible: %d"
)

// StockLedgerUseCase registra reposiciones (IN) y salidas (OUT) de stock. Cada cambio de cantidad
// se confirma en la misma transacción que su fila en el libro.
type StockLedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	publisher   MovementPublisher
	log         *logger.Logger
	now         func() time.Time
}

// NewStockLedgerUseCase construye el caso de uso. publisher puede ser nil (sin publicación).
func NewStockLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	publisher MovementPublisher,
	log *logger.Logger,
) *StockLedgerUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &StockLedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		publisher:   publisher,
		log:         log.Component("stock_ledger"),
		now:         time.Now,
	}
}

// Replenish suma quantity al stock del producto y agrega una transacción IN, atómicamente.
// quantity <= 0 no hace nada (nil, nil). Sin asociación: domain.ErrAssociationNotFound.
// Producto inexistente en la asociación: domain.ErrNotFound.
func (uc *StockLedgerUseCase) Replenish(ctx context.Context, scope tenant.Scope, productID string, quantity int64) (*dto.ReplenishResponse, error) {
	if quantity <= 0 {
		uc.log.Debug().Str("product_id", productID).Int64("quantity", quantity).Msg("reposición ignorada: cantidad no positiva")
		return nil, nil
	}
	if !scope.Resolved() {
		return nil, domain.ErrAssociationNotFound
	}
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}

	mov := entity.Transaction{
		ID:            uuid.New().String(),
		AssociationID: scope.AssociationID,
		ProductID:     productID,
		Type:          entity.TransactionTypeIN,
		Quantity:      quantity,
		CreatedAt:     uc.now(),
	}
	var newQty int64
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
		q, err := productRepo.IncrementQuantity(ctx, scope.AssociationID, productID, quantity)
		if err != nil {
			return err
		}
		newQty = q
		return txRepo.Create(ctx, &mov)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Error().Err(err).Str("product_id", productID).Msg("reposición de stock")
		}
		return nil, err
	}

	uc.log.Info().
		Str("association_id", scope.AssociationID).
		Str("product_id", productID).
		Int64("quantity", quantity).
		Int64("new_quantity", newQty).
		Msg("stock repuesto")
	uc.publish(ctx, []entity.Transaction{mov})

	return &dto.ReplenishResponse{ProductID: productID, Quantity: newQty, TransactionID: mov.ID}, nil
}

// Deduct registra la salida de un lote de productos en dos fases:
//  1. Validación (solo lectura): cada producto existe en la asociación, la cantidad es > 0 y
//     lo pedido (acumulado por producto dentro del lote) no supera el stock disponible.
//  2. Commit atómico: decremento condicional + transacción OUT por línea. Si otro pedido
//     consumió el stock entre ambas fases, el decremento falla y se revierte todo el lote.
//
// Nunca devuelve error: los fallos se expresan en DeductResult y el detalle técnico va al log.
func (uc *StockLedgerUseCase) Deduct(ctx context.Context, scope tenant.Scope, items []dto.OrderItem) dto.DeductResult {
	if !scope.Resolved() {
		return failure(msgNoAssociation, &dto.DeductFailure{Reason: dto.DeductReasonNoAssociation})
	}
	if len(items) == 0 {
		return failure(msgEmptyOrder, &dto.DeductFailure{Reason: dto.DeductReasonEmptyOrder})
	}

	if res, ok, err := uc.validate(ctx, scope, items); err != nil {
		uc.log.Error().Err(err).Str("association_id", scope.AssociationID).Msg("validación de salida")
		return failure(msgDeductInternal, &dto.DeductFailure{Reason: dto.DeductReasonInternal})
	} else if !ok {
		return res
	}

	now := uc.now()
	movements := make([]entity.Transaction, 0, len(items))
	var failed dto.OrderItem

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
		movements = movements[:0]
		requested := make(map[string]int64, len(items))
		for _, item := range items {
			requested[item.ProductID] += item.Quantity
			if _, err := productRepo.DecrementQuantity(ctx, scope.AssociationID, item.ProductID, item.Quantity); err != nil {
				// failed.Quantity lleva lo acumulado para el producto, igual que en la validación
				failed = dto.OrderItem{ProductID: item.ProductID, Quantity: requested[item.ProductID]}
				return err
			}
			mov := entity.Transaction{
				ID:            uuid.New().String(),
				AssociationID: scope.AssociationID,
				ProductID:     item.ProductID,
				Type:          entity.TransactionTypeOUT,
				Quantity:      item.Quantity,
				CreatedAt:     now,
			}
			if err := txRepo.Create(ctx, &mov); err != nil {
				return err
			}
			movements = append(movements, mov)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			return uc.raceFailure(ctx, scope, failed)
		case errors.Is(err, domain.ErrNotFound):
			return failure(fmt.Sprintf(fmtProductNotFound, failed.ProductID),
				&dto.DeductFailure{ProductID: failed.ProductID, Reason: dto.DeductReasonNotFound})
		}
		uc.log.Error().Err(err).Str("association_id", scope.AssociationID).Msg("commit de salida")
		return failure(msgDeductInternal, &dto.DeductFailure{Reason: dto.DeductReasonInternal})
	}

	uc.log.Info().
		Str("association_id", scope.AssociationID).
		Int("lines", len(movements)).
		Msg("salida de stock confirmada")
	uc.publish(ctx, movements)

	return dto.DeductResult{Success: true, Message: msgDeductOK}
}

// validate ejecuta la fase de solo lectura. ok=false trae el resultado de rechazo listo para devolver.
func (uc *StockLedgerUseCase) validate(ctx context.Context, scope tenant.Scope, items []dto.OrderItem) (dto.DeductResult, bool, error) {
	requested := make(map[string]int64, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			return failure(fmt.Sprintf(fmtProductNotFound, item.ProductID),
				&dto.DeductFailure{Reason: dto.DeductReasonNotFound}), false, nil
		}
		p, err := uc.productRepo.GetByID(ctx, scope.AssociationID, item.ProductID)
		if err != nil {
			return dto.DeductResult{}, false, err
		}
		if p == nil {
			return failure(fmt.Sprintf(fmtProductNotFound, item.ProductID),
				&dto.DeductFailure{ProductID: item.ProductID, Reason: dto.DeductReasonNotFound}), false, nil
		}
		if item.Quantity <= 0 {
			return failure(fmt.Sprintf(fmtInvalidQuantity, p.Name), &dto.DeductFailure{
				ProductID: p.ID, ProductName: p.Name, Reason: dto.DeductReasonInvalidQuantity, Requested: item.Quantity,
			}), false, nil
		}
		requested[p.ID] += item.Quantity
		if requested[p.ID] > p.Quantity {
			return failure(fmt.Sprintf(fmtInsufficient, p.Name, requested[p.ID], p.Quantity), &dto.DeductFailure{
				ProductID:   p.ID,
				ProductName: p.Name,
				Reason:      dto.DeductReasonInsufficientStock,
				Requested:   requested[p.ID],
				Available:   p.Quantity,
			}), false, nil
		}
	}
	return dto.DeductResult{}, true, nil
}

// raceFailure arma el rechazo cuando el decremento condicional falló dentro de la transacción
// (el stock cambió después de la validación). item.Quantity es el total pedido del producto
// hasta la línea que falló. Relee la cantidad actual para informarla.
func (uc *StockLedgerUseCase) raceFailure(ctx context.Context, scope tenant.Scope, item dto.OrderItem) dto.DeductResult {
	uc.log.Warn().
		Str("association_id", scope.AssociationID).
		Str("product_id", item.ProductID).
		Int64("requested", item.Quantity).
		Msg("stock modificado entre validación y commit; salida revertida")

	f := &dto.DeductFailure{ProductID: item.ProductID, Reason: dto.DeductReasonInsufficientStock, Requested: item.Quantity}
	name := item.ProductID
	if p, err := uc.productRepo.GetByID(ctx, scope.AssociationID, item.ProductID); err == nil && p != nil {
		f.ProductName = p.Name
		f.Available = p.Quantity
		name = p.Name
	}
	return failure(fmt.Sprintf(fmtInsufficient, name, f.Requested, f.Available), f)
}

func (uc *StockLedgerUseCase) publish(ctx context.Context, movements []entity.Transaction) {
	if len(movements) == 0 {
		return
	}
	if err := uc.publisher.Publish(ctx, movements); err != nil {
		uc.log.Warn().Err(err).Int("movements", len(movements)).Msg("publicar movimientos de stock")
	}
}

func failure(msg string, f *dto.DeductFailure) dto.DeductResult {
	return dto.DeductResult{Success: false, Message: msg, Failure: f}
}
