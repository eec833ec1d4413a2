package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

// BillsFile nombre del documento principal de facturas.
const BillsFile = "bills.json"

var _ repository.BillStore = (*BillStore)(nil)

// BillStore almacén principal de facturas: una lista JSON en bills.json.
// Las entradas existentes se conservan tal cual al agregar (no se reescriben a la forma canónica).
type BillStore struct {
	file             *File
	rejectDuplicates bool
}

// NewBillStore construye el almacén en dir/bills.json.
func NewBillStore(dir string, rejectDuplicates bool) *BillStore {
	return &BillStore{file: NewFile(filepath.Join(dir, BillsFile)), rejectDuplicates: rejectDuplicates}
}

// Append agrega la factura al final de la lista.
func (s *BillStore) Append(_ context.Context, bill *entity.Bill) error {
	doc, err := json.Marshal(dto.BillFromEntity(bill))
	if err != nil {
		return fmt.Errorf("serializar factura: %w", err)
	}
	return s.file.Update(func(current []byte) ([]byte, error) {
		var list []json.RawMessage
		if len(current) > 0 {
			if err := json.Unmarshal(current, &list); err != nil {
				return nil, fmt.Errorf("%s corrupto: %w", s.file.Path(), err)
			}
		}
		if s.rejectDuplicates && containsBill(list, bill.ID) {
			return nil, fmt.Errorf("factura %s: %w", bill.ID, domain.ErrDuplicate)
		}
		list = append(list, doc)
		return json.MarshalIndent(list, "", "  ")
	})
}

// ListAll devuelve todas las facturas en orden de inserción.
func (s *BillStore) ListAll(_ context.Context) ([]*entity.Bill, error) {
	data, err := s.file.Load()
	if err != nil {
		return nil, err
	}
	docs, err := dto.DecodeBillDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.file.Path(), err)
	}
	out := make([]*entity.Bill, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ToEntity())
	}
	return out, nil
}

// GetByID devuelve nil, nil si no existe.
func (s *BillStore) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range all {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

// containsBill busca el ID con la misma normalización de claves que la lectura.
// Las entradas ilegibles no cuentan como duplicado.
func containsBill(list []json.RawMessage, id string) bool {
	for _, raw := range list {
		m, err := dto.ParseRawObject(raw)
		if err != nil {
			continue
		}
		b, err := dto.DecodeBill(m)
		if err != nil {
			continue
		}
		if b.ID == id {
			return true
		}
	}
	return false
}
