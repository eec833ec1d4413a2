package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	domainbilling "github.com/jhoicas/pos-billing-api/internal/domain/billing"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

// CartUseCase operaciones sobre un carrito que mantiene el cliente. No guarda estado:
// cada llamada recibe el carrito completo y devuelve el resultado con totales en vivo.
type CartUseCase struct {
	catalog  repository.ProductMirror
	settings SettingsReader
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(catalog repository.ProductMirror, settings SettingsReader) *CartUseCase {
	return &CartUseCase{catalog: catalog, settings: settings}
}

// Totals recalcula líneas y totales del carrito.
func (uc *CartUseCase) Totals(ctx context.Context, in dto.CartTotalsRequest) (*dto.CartResponse, error) {
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer configuración: %w", err)
	}
	lines, err := uc.resolveLines(ctx, in.Items, settings.TaxPercentage)
	if err != nil {
		return nil, err
	}
	return respond(lines, in, settings)
}

// AddItem agrega un producto del catálogo al carrito validando el stock disponible.
func (uc *CartUseCase) AddItem(ctx context.Context, in dto.CartAddItemRequest) (*dto.CartResponse, error) {
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer configuración: %w", err)
	}
	lines, err := uc.resolveLines(ctx, in.Items, settings.TaxPercentage)
	if err != nil {
		return nil, err
	}
	product, err := uc.product(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}
	lines, err = domainbilling.AddItem(lines, product, quantity, settings.TaxPercentage)
	if err != nil {
		return nil, err
	}
	return respond(lines, in.CartTotalsRequest, settings)
}

// ChangeQuantity cambia la cantidad de una línea. Cantidad cero o negativa elimina la línea.
func (uc *CartUseCase) ChangeQuantity(ctx context.Context, in dto.CartQuantityRequest) (*dto.CartResponse, error) {
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer configuración: %w", err)
	}
	lines, err := uc.resolveLines(ctx, in.Items, settings.TaxPercentage)
	if err != nil {
		return nil, err
	}
	stock := 0
	if in.NewQuantity > 0 {
		product, err := uc.product(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		stock = product.Stock
	}
	lines, err = domainbilling.ApplyQuantityChange(lines, in.ProductID, in.NewQuantity, stock)
	if err != nil {
		return nil, err
	}
	return respond(lines, in.CartTotalsRequest, settings)
}

// BackSolve deriva el descuento a partir de un total editado a mano.
func (uc *CartUseCase) BackSolve(in dto.BackSolveRequest) dto.BackSolveResponse {
	amount, pct := domainbilling.BackSolveDiscountFromTotal(in.Subtotal, in.TaxAmount, in.DesiredTotal)
	return dto.BackSolveResponse{
		DiscountAmount:     domainbilling.FormatAmount(amount),
		DiscountPercentage: domainbilling.FormatAmount(pct),
	}
}

// resolveLines completa nombre, precio y tasa desde el catálogo cuando la línea no los trae.
// Un precio o tasa enviados en 0 son valores (línea sin cargo, producto exento), no ausencia.
func (uc *CartUseCase) resolveLines(ctx context.Context, items []dto.CartLineDTO, defaultTax decimal.Decimal) ([]entity.LineItem, error) {
	out := make([]entity.LineItem, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 || negative(it.UnitPrice) || negative(it.TaxPercentage) {
			return nil, fmt.Errorf("línea %q cantidad %d: %w", it.ProductID, it.Quantity, domain.ErrInvalidInput)
		}
		var (
			p   *entity.Product
			err error
		)
		switch {
		case it.ProductName == "" || it.UnitPrice == nil:
			p, err = uc.product(ctx, it.ProductID)
		case it.TaxPercentage == nil:
			// Línea libre sin tasa: si el producto no existe queda con la del sistema.
			p, err = uc.catalog.GetByID(ctx, it.ProductID)
			if err != nil {
				err = fmt.Errorf("leer producto %s: %w", it.ProductID, err)
			}
		}
		if err != nil {
			return nil, err
		}
		line := entity.LineItem{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			TaxPercentage: defaultTax,
			HSNCode:       it.HSNCode,
			Barcodes:      it.Barcodes,
		}
		if p != nil {
			if line.ProductName == "" {
				line.ProductName = p.Name
			}
			line.UnitPrice = p.Price
			line.TaxPercentage = p.TaxOr(defaultTax)
			if line.HSNCode == "" {
				line.HSNCode = p.HSNCode
			}
		}
		if it.UnitPrice != nil {
			line.UnitPrice = *it.UnitPrice
		}
		if it.TaxPercentage != nil {
			line.TaxPercentage = *it.TaxPercentage
		}
		out = append(out, line)
	}
	return domainbilling.RecomputeLines(out), nil
}

func negative(d *decimal.Decimal) bool {
	return d != nil && d.IsNegative()
}

func (uc *CartUseCase) product(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer producto %s: %w", id, err)
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func respond(lines []entity.LineItem, in dto.CartTotalsRequest, settings *entity.SystemSettings) (*dto.CartResponse, error) {
	mode, err := domainbilling.ParseDiscountMode(in.DiscountMode)
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
	t := domainbilling.ComputeTotals(lines, mode, in.DiscountValue, rate)

	items := make([]dto.CartLineDTO, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.CartLineFromEntity(l))
	}
	return &dto.CartResponse{
		Items: items,
		Totals: dto.TotalsDTO{
			Subtotal:                 domainbilling.FormatAmount(t.Subtotal),
			DiscountAmount:           domainbilling.FormatAmount(t.DiscountAmount),
			TaxableBase:              domainbilling.FormatAmount(t.TaxableBase),
			TaxPercentage:            domainbilling.FormatAmount(rate),
			TaxAmount:                domainbilling.FormatAmount(t.TaxAmount),
			Total:                    domainbilling.FormatAmount(t.Total),
			EffectiveDiscountPercent: domainbilling.FormatAmount(t.EffectiveDiscountPercent),
		},
	}, nil
}
