package entity

import "time"

// Batch lote de mercadería; Product.BatchID apunta a su ID.
type Batch struct {
	ID          string
	BatchNumber string
	Place       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
