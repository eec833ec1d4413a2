package billing

import (
	"context"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción relacional con los repos
// que participan en el guardado de una factura. Si fn devuelve error se hace rollback.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		billRepo repository.BillRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// SettingsReader lectura de la configuración vigente para sellar facturas.
type SettingsReader interface {
	Get(ctx context.Context) (*entity.SystemSettings, error)
}
