package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
	"github.com/jhoicas/pos-billing-api/pkg/logger"
)

// BillsTopic tema del registro de cambios para facturas.
const BillsTopic = "bills.json"

// BranchStatus resultado de un paso de persistencia.
type BranchStatus string

const (
	BranchOK      BranchStatus = "ok"
	BranchFailed  BranchStatus = "failed"
	BranchSkipped BranchStatus = "skipped"
)

// BranchResult estado y error (si lo hubo) de un paso.
type BranchResult struct {
	Status BranchStatus
	Err    error
}

func ok() BranchResult { return BranchResult{Status: BranchOK} }

func failed(err error) BranchResult { return BranchResult{Status: BranchFailed, Err: err} }

func skipped(err error) BranchResult { return BranchResult{Status: BranchSkipped, Err: err} }

// Outcome resultado de guardar una factura. Solo existe si el almacén principal la aceptó;
// las demás ramas pueden haber fallado sin invalidar la venta.
type Outcome struct {
	Bill       *entity.Bill
	Primary    BranchResult
	Log        BranchResult
	Mirror     BranchResult
	Relational BranchResult
}

// Coordinator guarda una factura en el almacén principal y propaga el descuento de stock
// al espejo de productos y a la base relacional. Sin 2PC ni compensaciones: solo el primer
// paso es obligatorio y ningún paso se reintenta.
type Coordinator struct {
	bills     repository.BillStore
	changes   repository.ChangeLogger
	mirror    repository.ProductMirror
	txRunner  BillingTxRunner
	sentinels map[string]struct{}
	log       *logger.Logger
}

// NewCoordinator construye el coordinador. sentinelCreators son los creadores de sistema que
// no se validan contra la tabla de usuarios.
func NewCoordinator(
	bills repository.BillStore,
	changes repository.ChangeLogger,
	mirror repository.ProductMirror,
	txRunner BillingTxRunner,
	log *logger.Logger,
	sentinelCreators ...string,
) *Coordinator {
	s := make(map[string]struct{}, len(sentinelCreators))
	for _, c := range sentinelCreators {
		if c != "" {
			s[c] = struct{}{}
		}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator{
		bills:     bills,
		changes:   changes,
		mirror:    mirror,
		txRunner:  txRunner,
		sentinels: s,
		log:       log.Named("bill_coordinator"),
	}
}

// Persist ejecuta, en orden: almacén principal, registro de cambios, espejo de productos y
// transacción relacional. Devuelve error solo si falla el almacén principal
// (domain.ErrDuplicate o domain.ErrPrimaryWrite); en ese caso no se ejecuta nada más.
func (c *Coordinator) Persist(ctx context.Context, bill *entity.Bill) (*Outcome, error) {
	if bill == nil || bill.ID == "" {
		return nil, domain.ErrInvalidInput
	}

	// 1) almacén principal
	if err := c.bills.Append(ctx, bill); err != nil {
		c.log.Error().Err(err).Str("bill_id", bill.ID).Str("branch", "primary").Msg("no se pudo guardar la factura")
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("factura %s: %w", bill.ID, domain.ErrDuplicate)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPrimaryWrite, err)
	}
	out := &Outcome{Bill: bill, Primary: ok()}

	// 2) registro de cambios
	out.Log = c.appendChangeLog(bill)

	// 3) espejo de productos
	out.Mirror = c.decrementMirror(ctx, bill.ID, bill.QuantityByProduct())

	// 4) relacional
	out.Relational = c.persistRelational(ctx, bill)

	return out, nil
}

func (c *Coordinator) appendChangeLog(bill *entity.Bill) BranchResult {
	if c.changes == nil {
		return skipped(nil)
	}
	if err := c.changes.Append(BillsTopic, fmt.Sprintf("New bill created: (ID: %s)", bill.ID)); err != nil {
		c.log.Warn().Err(err).Str("bill_id", bill.ID).Str("branch", "log").Msg("no se pudo escribir el registro de cambios")
		return failed(err)
	}
	return ok()
}

func (c *Coordinator) decrementMirror(ctx context.Context, billID string, quantities map[string]int) BranchResult {
	if c.mirror == nil || len(quantities) == 0 {
		return skipped(nil)
	}
	if err := c.mirror.DecrementStock(ctx, quantities); err != nil {
		c.log.Warn().Err(err).Str("bill_id", billID).Str("branch", "mirror").Msg("no se pudo descontar stock en el espejo de productos")
		return failed(err)
	}
	return ok()
}

func (c *Coordinator) persistRelational(ctx context.Context, bill *entity.Bill) BranchResult {
	if c.txRunner == nil {
		return skipped(nil)
	}
	err := c.txRunner.RunBilling(ctx, func(
		userRepo repository.UserRepository,
		billRepo repository.BillRepository,
		productRepo repository.ProductRepository,
	) error {
		if !c.isSentinel(bill.CreatedBy) {
			exists, err := userRepo.Exists(ctx, bill.CreatedBy)
			if err != nil {
				return fmt.Errorf("validar creador: %w", err)
			}
			if !exists {
				return fmt.Errorf("creador %q: %w", bill.CreatedBy, domain.ErrUserNotFound)
			}
		}
		if err := billRepo.Create(ctx, bill); err != nil {
			return err
		}
		if err := billRepo.CreateItems(ctx, bill); err != nil {
			return err
		}
		for _, it := range bill.Items {
			if it.ProductID == "" || it.Quantity <= 0 {
				continue
			}
			if err := productRepo.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	switch {
	case err == nil:
		return ok()
	case errors.Is(err, domain.ErrUserNotFound):
		c.log.Warn().Str("bill_id", bill.ID).Str("branch", "relational").Str("created_by", bill.CreatedBy).
			Msg("creador inexistente: factura no registrada en la base relacional")
		return skipped(err)
	default:
		c.log.Error().Err(err).Str("bill_id", bill.ID).Str("branch", "relational").Msg("rollback de la transacción de factura")
		return failed(err)
	}
}

func (c *Coordinator) isSentinel(createdBy string) bool {
	_, found := c.sentinels[createdBy]
	return found
}
