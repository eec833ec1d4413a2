package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-billing-api/internal/application/billing"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling inicia una transacción con los repos de usuarios, facturas y productos atados a ella.
// Si fn falla se hace rollback; la conexión vuelve al pool en todos los casos.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	billRepo repository.BillRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewBillRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
