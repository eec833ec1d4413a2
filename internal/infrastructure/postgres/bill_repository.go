package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo copia relacional de las facturas (cabecera + líneas).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador de persistencia para facturas.
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, store_id, store_name, store_address,
	customer_id, customer_name, customer_phone, customer_email, customer_address,
	subtotal, discount_percentage, discount_amount, tax_percentage, tax_amount, total,
	payment_method, issued_at, notes, created_by,
	gstin, company_name, company_address, company_phone, company_email, bill_format`

// Create inserta la cabecera de la factura.
func (r *BillRepo) Create(ctx context.Context, b *entity.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.StoreID, b.StoreName, b.StoreAddress,
		b.Customer.ID, b.Customer.Name, b.Customer.Phone, b.Customer.Email, b.Customer.Address,
		b.Subtotal, b.DiscountPercentage, b.DiscountAmount, b.TaxPercentage, b.TaxAmount, b.Total,
		b.PaymentMethod, b.Timestamp, b.Notes, b.CreatedBy,
		b.GSTIN, b.CompanyName, b.CompanyAddress, b.CompanyPhone, b.CompanyEmail, b.BillFormat,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// CreateItems inserta las líneas de la factura en un solo batch. tax_percentage guarda la
// tasa informativa de la línea; tax_amount su parte del impuesto de la factura, de modo que
// la suma por factura coincide con bills.tax_amount.
func (r *BillRepo) CreateItems(ctx context.Context, bill *entity.Bill) error {
	items := bill.Items
	if len(items) == 0 {
		return nil
	}
	shares := bill.LineTaxShares()
	query := `
		INSERT INTO bill_items (bill_id, line_no, product_id, product_name, quantity, unit_price, line_total, tax_percentage, tax_amount, hsn_code, barcodes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	batch := &pgx.Batch{}
	for i, it := range items {
		batch.Queue(query,
			bill.ID, i+1, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice,
			it.ComputedTotal(), it.TaxPercentage, shares[i], it.HSNCode, it.Barcodes,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert bill item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la factura con sus líneas.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	var b entity.Bill
	err := r.q.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id).Scan(
		&b.ID, &b.StoreID, &b.StoreName, &b.StoreAddress,
		&b.Customer.ID, &b.Customer.Name, &b.Customer.Phone, &b.Customer.Email, &b.Customer.Address,
		&b.Subtotal, &b.DiscountPercentage, &b.DiscountAmount, &b.TaxPercentage, &b.TaxAmount, &b.Total,
		&b.PaymentMethod, &b.Timestamp, &b.Notes, &b.CreatedBy,
		&b.GSTIN, &b.CompanyName, &b.CompanyAddress, &b.CompanyPhone, &b.CompanyEmail, &b.BillFormat,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT product_id, product_name, quantity, unit_price, line_total, tax_percentage, hsn_code, barcodes
		FROM bill_items WHERE bill_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list bill items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.LineTotal, &it.TaxPercentage, &it.HSNCode, &it.Barcodes); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		b.Items = append(b.Items, it)
	}
	return &b, rows.Err()
}
