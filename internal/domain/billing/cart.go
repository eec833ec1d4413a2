package billing

import (
	"fmt"

	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ApplyQuantityChange cambia la cantidad de una línea del carrito.
// Nunca modifica el slice recibido: en caso de rechazo el carrito queda igual.
//   - newQuantity > stockAvailable: ErrInsufficientStock.
//   - newQuantity <= 0: la línea se elimina.
//   - en otro caso se recalcula LineTotal; UnitPrice no cambia.
func ApplyQuantityChange(items []entity.LineItem, productID string, newQuantity, stockAvailable int) ([]entity.LineItem, error) {
	idx := indexOf(items, productID)
	if idx < 0 {
		return nil, fmt.Errorf("línea %s: %w", productID, domain.ErrNotFound)
	}
	if newQuantity <= 0 {
		out := make([]entity.LineItem, 0, len(items)-1)
		out = append(out, items[:idx]...)
		return append(out, items[idx+1:]...), nil
	}
	if newQuantity > stockAvailable {
		return nil, insufficient(items[idx].ProductName, stockAvailable, newQuantity)
	}
	out := make([]entity.LineItem, len(items))
	copy(out, items)
	out[idx].Quantity = newQuantity
	out[idx].LineTotal = out[idx].ComputedTotal()
	return out, nil
}

// AddItem agrega un producto al carrito (o suma a su línea existente) validando stock.
// El precio, nombre, HSN y tasa se copian del producto en este momento; si el producto
// no tiene tasa propia se usa defaultTax; una tasa propia de 0 se respeta.
func AddItem(items []entity.LineItem, product *entity.Product, quantity int, defaultTax decimal.Decimal) ([]entity.LineItem, error) {
	if product == nil || product.ID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if idx := indexOf(items, product.ID); idx >= 0 {
		return ApplyQuantityChange(items, product.ID, items[idx].Quantity+quantity, product.Stock)
	}
	if quantity > product.Stock {
		return nil, insufficient(product.Name, product.Stock, quantity)
	}
	tax := product.TaxOr(defaultTax)
	line := entity.LineItem{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      quantity,
		UnitPrice:     product.Price,
		TaxPercentage: tax,
		HSNCode:       product.HSNCode,
		Barcodes:      product.Barcode,
	}
	line.LineTotal = line.ComputedTotal()
	out := make([]entity.LineItem, 0, len(items)+1)
	out = append(out, items...)
	return append(out, line), nil
}

func indexOf(items []entity.LineItem, productID string) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func insufficient(name string, available, requested int) error {
	return fmt.Errorf("%s: disponible %d, solicitado %d: %w", name, available, requested, domain.ErrInsufficientStock)
}
