package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

// BillFromEntity convierte la factura de dominio a su documento canónico.
func BillFromEntity(b *entity.Bill) BillDTO {
	items := make([]BillItemDTO, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, BillItemDTO{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			LineTotal:     it.LineTotal,
			TaxPercentage: it.TaxPercentage,
			HSNCode:       it.HSNCode,
			Barcodes:      it.Barcodes,
		})
	}
	return BillDTO{
		ID:           b.ID,
		StoreID:      b.StoreID,
		StoreName:    b.StoreName,
		StoreAddress: b.StoreAddress,
		Customer: CustomerSnapshotDTO{
			ID:      b.Customer.ID,
			Name:    b.Customer.Name,
			Phone:   b.Customer.Phone,
			Email:   b.Customer.Email,
			Address: b.Customer.Address,
		},
		Items:              items,
		Subtotal:           b.Subtotal,
		DiscountPercentage: b.DiscountPercentage,
		DiscountAmount:     b.DiscountAmount,
		TaxPercentage:      b.TaxPercentage,
		TaxAmount:          b.TaxAmount,
		Total:              b.Total,
		PaymentMethod:      b.PaymentMethod,
		Timestamp:          b.Timestamp,
		Notes:              b.Notes,
		CreatedBy:          b.CreatedBy,
		GSTIN:              b.GSTIN,
		CompanyName:        b.CompanyName,
		CompanyAddress:     b.CompanyAddress,
		CompanyPhone:       b.CompanyPhone,
		CompanyEmail:       b.CompanyEmail,
		BillFormat:         b.BillFormat,
	}
}

// ToEntity convierte el documento a la factura de dominio.
func (d *BillDTO) ToEntity() *entity.Bill {
	items := make([]entity.LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entity.LineItem{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			LineTotal:     it.LineTotal,
			TaxPercentage: it.TaxPercentage,
			HSNCode:       it.HSNCode,
			Barcodes:      it.Barcodes,
		})
	}
	return &entity.Bill{
		ID:           d.ID,
		StoreID:      d.StoreID,
		StoreName:    d.StoreName,
		StoreAddress: d.StoreAddress,
		Customer: entity.CustomerSnapshot{
			ID:      d.Customer.ID,
			Name:    d.Customer.Name,
			Phone:   d.Customer.Phone,
			Email:   d.Customer.Email,
			Address: d.Customer.Address,
		},
		Items:              items,
		Subtotal:           d.Subtotal,
		DiscountPercentage: d.DiscountPercentage,
		DiscountAmount:     d.DiscountAmount,
		TaxPercentage:      d.TaxPercentage,
		TaxAmount:          d.TaxAmount,
		Total:              d.Total,
		PaymentMethod:      d.PaymentMethod,
		Timestamp:          d.Timestamp,
		Notes:              d.Notes,
		CreatedBy:          d.CreatedBy,
		GSTIN:              d.GSTIN,
		CompanyName:        d.CompanyName,
		CompanyAddress:     d.CompanyAddress,
		CompanyPhone:       d.CompanyPhone,
		CompanyEmail:       d.CompanyEmail,
		BillFormat:         d.BillFormat,
	}
}

// ProductFromEntity salida de un producto.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Barcode:       p.Barcode,
		Stock:         p.Stock,
		TaxPercentage: p.TaxPercentage,
		HSNCode:       p.HSNCode,
		BatchID:       p.BatchID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToEntity convierte el documento del espejo a producto de dominio.
func (r *ProductResponse) ToEntity() *entity.Product {
	return &entity.Product{
		ID:            r.ID,
		Name:          r.Name,
		Price:         r.Price,
		Barcode:       r.Barcode,
		Stock:         r.Stock,
		TaxPercentage: r.TaxPercentage,
		HSNCode:       r.HSNCode,
		BatchID:       r.BatchID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// CartLineFromEntity línea de carrito de salida; precio y tasa siempre presentes.
func CartLineFromEntity(it entity.LineItem) CartLineDTO {
	price, tax := it.UnitPrice, it.TaxPercentage
	return CartLineDTO{
		ProductID:     it.ProductID,
		ProductName:   it.ProductName,
		Quantity:      it.Quantity,
		UnitPrice:     &price,
		LineTotal:     it.LineTotal,
		TaxPercentage: &tax,
		HSNCode:       it.HSNCode,
		Barcodes:      it.Barcodes,
	}
}

// SettingsFromEntity configuración de salida; Height cero se expone como "auto".
func SettingsFromEntity(s *entity.SystemSettings) SettingsDTO {
	formats := make(map[string]BillFormatDTO, len(s.BillFormats))
	for name, f := range s.BillFormats {
		formats[name] = BillFormatFromEntity(f)
	}
	return SettingsDTO{
		GSTIN:          s.GSTIN,
		TaxPercentage:  s.TaxPercentage,
		CompanyName:    s.CompanyName,
		CompanyAddress: s.CompanyAddress,
		CompanyPhone:   s.CompanyPhone,
		CompanyEmail:   s.CompanyEmail,
		BillFormats:    formats,
	}
}

// BillFormatFromEntity formato de papel de salida.
func BillFormatFromEntity(f entity.BillFormat) BillFormatDTO {
	height := f.Height.String()
	if f.AutoHeight() {
		height = "auto"
	}
	return BillFormatDTO{
		Width:  f.Width,
		Height: height,
		Margins: MarginsDTO{
			Top:    f.Margins.Top,
			Bottom: f.Margins.Bottom,
			Left:   f.Margins.Left,
			Right:  f.Margins.Right,
		},
		Unit: f.Unit,
	}
}

// ToEntity valida y convierte la configuración recibida. Height "auto" o vacío = alto variable.
func (d *SettingsDTO) ToEntity() (*entity.SystemSettings, error) {
	formats := make(map[string]entity.BillFormat, len(d.BillFormats))
	for name, f := range d.BillFormats {
		height := decimal.Zero
		if h := strings.TrimSpace(f.Height); h != "" && !strings.EqualFold(h, "auto") {
			v, err := decimal.NewFromString(h)
			if err != nil {
				return nil, err
			}
			height = v
		}
		unit := f.Unit
		if unit == "" {
			unit = "mm"
		}
		formats[name] = entity.BillFormat{
			Width:  f.Width,
			Height: height,
			Margins: entity.Margins{
				Top:    f.Margins.Top,
				Bottom: f.Margins.Bottom,
				Left:   f.Margins.Left,
				Right:  f.Margins.Right,
			},
			Unit: unit,
		}
	}
	return &entity.SystemSettings{
		GSTIN:          d.GSTIN,
		TaxPercentage:  d.TaxPercentage,
		CompanyName:    d.CompanyName,
		CompanyAddress: d.CompanyAddress,
		CompanyPhone:   d.CompanyPhone,
		CompanyEmail:   d.CompanyEmail,
		BillFormats:    formats,
	}, nil
}

// StoreFromEntity salida de una tienda.
func StoreFromEntity(s *entity.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// CustomerFromEntity salida de un cliente.
func CustomerFromEntity(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

// UserFromEntity salida de un usuario (sin hash).
func UserFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// HSNCodeFromEntity salida de un código HSN.
func HSNCodeFromEntity(h *entity.HSNCode) HSNCodeResponse {
	return HSNCodeResponse{ID: h.ID, Code: h.Code, Tax: h.Tax, CreatedAt: h.CreatedAt, UpdatedAt: h.UpdatedAt}
}

// BatchFromEntity salida de un lote.
func BatchFromEntity(b *entity.Batch) BatchResponse {
	return BatchResponse{ID: b.ID, BatchNumber: b.BatchNumber, Place: b.Place, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

// DiscountFromEntity salida de una solicitud de descuento.
func DiscountFromEntity(d *entity.DiscountRequest) DiscountResponse {
	return DiscountResponse{
		ID:         d.ID,
		UserID:     d.UserID,
		Percentage: d.Percentage,
		Amount:     d.Amount,
		BillID:     d.BillID,
		Status:     d.Status,
		ApprovedBy: d.ApprovedBy,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
