package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	domainbilling "github.com/jhoicas/pos-billing-api/internal/domain/billing"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

// BillPersister guarda una factura finalizada (implementado por Coordinator).
type BillPersister interface {
	Persist(ctx context.Context, bill *entity.Bill) (*Outcome, error)
}

// CheckoutConfig valores por defecto del cobro.
type CheckoutConfig struct {
	DefaultBillFormat string
}

// CheckoutUseCase arma la factura final (fotos de producto, cliente, tienda y configuración)
// y la entrega al coordinador de persistencia.
type CheckoutUseCase struct {
	catalog   repository.ProductMirror
	customers repository.CustomerRepository
	stores    repository.StoreRepository
	settings  SettingsReader
	persister BillPersister
	cfg       CheckoutConfig
	now       func() time.Time
	newID     func() string
}

// NewCheckoutUseCase construye el caso de uso. customers y stores pueden ser nil.
func NewCheckoutUseCase(
	catalog repository.ProductMirror,
	customers repository.CustomerRepository,
	stores repository.StoreRepository,
	settings SettingsReader,
	persister BillPersister,
	cfg CheckoutConfig,
) *CheckoutUseCase {
	if cfg.DefaultBillFormat == "" {
		cfg.DefaultBillFormat = entity.FormatThermal80mm
	}
	return &CheckoutUseCase{
		catalog:   catalog,
		customers: customers,
		stores:    stores,
		settings:  settings,
		persister: persister,
		cfg:       cfg,
		now:       time.Now,
		newID:     NewBillID,
	}
}

// NewBillID genera "inv-" seguido de 12 caracteres hexadecimales.
func NewBillID() string {
	return "inv-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Checkout cobra el carrito: precios y datos se toman del catálogo en este momento.
// Si DesiredTotal viene informado, el descuento se deriva del total editado.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, in dto.CheckoutRequest) (*Outcome, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("la factura no tiene productos: %w", domain.ErrInvalidInput)
	}
	mode, err := domainbilling.ParseDiscountMode(in.DiscountMode)
	if err != nil {
		return nil, err
	}
	payment, err := paymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer configuración: %w", err)
	}
	format, err := uc.billFormat(settings, in.BillFormat)
	if err != nil {
		return nil, err
	}
	rate := settings.TaxPercentage
	if in.TaxPercentage != nil {
		if in.TaxPercentage.IsNegative() {
			return nil, fmt.Errorf("tasa de impuesto negativa: %w", domain.ErrInvalidInput)
		}
		rate = *in.TaxPercentage
	}

	// AddItem agrega cantidades por producto y valida el total contra el stock del catálogo.
	var lines []entity.LineItem
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity < 1 {
			return nil, fmt.Errorf("línea %q cantidad %d: %w", it.ProductID, it.Quantity, domain.ErrInvalidInput)
		}
		product, err := uc.catalog.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("leer producto %s: %w", it.ProductID, err)
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
		lines, err = domainbilling.AddItem(lines, product, it.Quantity, settings.TaxPercentage)
		if err != nil {
			return nil, err
		}
	}

	customer, err := uc.customerSnapshot(ctx, in)
	if err != nil {
		return nil, err
	}

	bill := &entity.Bill{
		ID:            uc.newID(),
		Customer:      customer,
		Items:         lines,
		TaxPercentage: rate,
		PaymentMethod: payment,
		Timestamp:     uc.now(),
		Notes:         strings.TrimSpace(in.Notes),
		CreatedBy:     creator(in.CreatedBy),
		BillFormat:    format,
	}
	if err := uc.stampStore(ctx, bill, in.StoreID); err != nil {
		return nil, err
	}
	settings.Stamp(bill)

	if in.DesiredTotal != nil {
		applyDesiredTotal(bill, rate, *in.DesiredTotal)
	} else {
		t := domainbilling.ComputeTotals(lines, mode, in.DiscountValue, rate)
		bill.Subtotal = t.Subtotal
		bill.DiscountAmount = t.DiscountAmount
		bill.DiscountPercentage = t.EffectiveDiscountPercent
		bill.TaxAmount = t.TaxAmount
		bill.Total = t.Total
	}

	return uc.persister.Persist(ctx, bill)
}

// applyDesiredTotal deriva el descuento del total editado. El impuesto se mantiene sobre el
// subtotal sin descuento, por lo que Total = Subtotal + Impuesto - Descuento.
func applyDesiredTotal(bill *entity.Bill, rate, desired decimal.Decimal) {
	base := domainbilling.ComputeTotals(bill.Items, domainbilling.DiscountPercent, decimal.Zero, rate)
	amount, pct := domainbilling.BackSolveDiscountFromTotal(base.Subtotal, base.TaxAmount, desired)
	if amount.GreaterThan(base.Subtotal) {
		amount = base.Subtotal
		pct = decimal.NewFromInt(100)
	}
	bill.Subtotal = base.Subtotal
	bill.TaxAmount = base.TaxAmount
	bill.DiscountAmount = amount
	bill.DiscountPercentage = pct
	bill.Total = base.Subtotal.Add(base.TaxAmount).Sub(amount)
}

// Submit recibe una factura ya finalizada por el cliente (POST /api/bills).
// Los totales de línea y el subtotal se recalculan. El impuesto enviado se conserva (puede
// venir de un total editado), el descuento se acota al subtotal y el total debe cuadrar con
// ambos (ver billing.SettleTotals). Las claves se normalizan en dto.DecodeBill.
func (uc *CheckoutUseCase) Submit(ctx context.Context, raw map[string]any) (*Outcome, error) {
	doc, err := dto.DecodeBill(raw)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	bill := doc.ToEntity()
	if len(bill.Items) == 0 {
		return nil, fmt.Errorf("la factura no tiene productos: %w", domain.ErrInvalidInput)
	}
	for _, it := range bill.Items {
		if it.Quantity < 1 || it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("línea %q cantidad %d: %w", it.ProductID, it.Quantity, domain.ErrInvalidInput)
		}
	}
	if bill.PaymentMethod, err = paymentMethod(bill.PaymentMethod); err != nil {
		return nil, err
	}

	bill.Items = domainbilling.RecomputeLines(bill.Items)
	if bill.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("descuento negativo: %w", domain.ErrInvalidInput)
	}
	subtotal := domainbilling.ComputeTotals(bill.Items, domainbilling.DiscountFlat, decimal.Zero, decimal.Zero).Subtotal
	t, err := domainbilling.SettleTotals(subtotal, bill.DiscountAmount, bill.TaxAmount, bill.Total)
	if err != nil {
		return nil, err
	}
	bill.Subtotal = t.Subtotal
	bill.DiscountAmount = t.DiscountAmount
	bill.DiscountPercentage = t.EffectiveDiscountPercent
	bill.TaxAmount = t.TaxAmount
	bill.Total = t.Total

	if bill.ID == "" {
		bill.ID = uc.newID()
	}
	if bill.Timestamp.IsZero() {
		bill.Timestamp = uc.now()
	}
	bill.CreatedBy = creator(bill.CreatedBy)

	needsStamp := bill.CompanyName == "" && bill.GSTIN == ""
	if needsStamp || bill.BillFormat == "" {
		settings, err := uc.settings.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("leer configuración: %w", err)
		}
		if needsStamp {
			settings.Stamp(bill)
		}
		if bill.BillFormat == "" {
			bill.BillFormat = uc.cfg.DefaultBillFormat
		}
	}

	return uc.persister.Persist(ctx, bill)
}

func (uc *CheckoutUseCase) billFormat(settings *entity.SystemSettings, name string) (string, error) {
	if name == "" {
		name = uc.cfg.DefaultBillFormat
	}
	if _, ok := settings.BillFormats[name]; !ok {
		return "", fmt.Errorf("formato de factura %q: %w", name, domain.ErrInvalidInput)
	}
	return name, nil
}

func (uc *CheckoutUseCase) customerSnapshot(ctx context.Context, in dto.CheckoutRequest) (entity.CustomerSnapshot, error) {
	if in.CustomerID != "" && uc.customers != nil {
		c, err := uc.customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return entity.CustomerSnapshot{}, fmt.Errorf("leer cliente: %w", err)
		}
		if c == nil {
			return entity.CustomerSnapshot{}, fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
		}
		return c.Snapshot(), nil
	}
	return entity.CustomerSnapshot{
		ID:      in.CustomerID,
		Name:    strings.TrimSpace(in.Customer.Name),
		Phone:   strings.TrimSpace(in.Customer.Phone),
		Email:   strings.TrimSpace(in.Customer.Email),
		Address: strings.TrimSpace(in.Customer.Address),
	}, nil
}

func (uc *CheckoutUseCase) stampStore(ctx context.Context, bill *entity.Bill, storeID string) error {
	if storeID == "" || uc.stores == nil {
		bill.StoreID = storeID
		return nil
	}
	s, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return fmt.Errorf("leer tienda: %w", err)
	}
	if s == nil {
		return fmt.Errorf("tienda %s: %w", storeID, domain.ErrNotFound)
	}
	bill.StoreID = s.ID
	bill.StoreName = s.Name
	bill.StoreAddress = s.Address
	return nil
}

func paymentMethod(m string) (string, error) {
	m = strings.ToLower(strings.TrimSpace(m))
	if m == "" {
		return entity.PaymentCash, nil
	}
	if !entity.ValidPaymentMethod(m) {
		return "", fmt.Errorf("método de pago %q: %w", m, domain.ErrInvalidInput)
	}
	return m, nil
}

func creator(createdBy string) string {
	if c := strings.TrimSpace(createdBy); c != "" {
		return c
	}
	return entity.UnknownCreator
}

// ToResponse cuerpo 201 con la factura y el estado de cada rama.
func (o *Outcome) ToResponse() dto.BillCreatedResponse {
	return dto.BillCreatedResponse{
		Bill: dto.BillFromEntity(o.Bill),
		Outcome: dto.PersistOutcomeDTO{
			Primary:    branchDTO(o.Primary),
			Log:        branchDTO(o.Log),
			Mirror:     branchDTO(o.Mirror),
			Relational: branchDTO(o.Relational),
		},
	}
}

func branchDTO(r BranchResult) dto.BranchStatusDTO {
	out := dto.BranchStatusDTO{Status: string(r.Status)}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}
