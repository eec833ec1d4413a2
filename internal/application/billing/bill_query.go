package billing

import (
	"context"
	"sort"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

// BillQueryUseCase historial de facturas desde el almacén principal.
type BillQueryUseCase struct {
	bills repository.BillStore
}

// NewBillQueryUseCase construye el caso de uso.
func NewBillQueryUseCase(bills repository.BillStore) *BillQueryUseCase {
	return &BillQueryUseCase{bills: bills}
}

// List devuelve las facturas más recientes primero. limit <= 0 devuelve todas.
func (uc *BillQueryUseCase) List(ctx context.Context, limit, offset int) (*dto.BillListResponse, error) {
	all, err := uc.bills.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	total := len(all)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	items := make([]dto.BillDTO, 0, end-offset)
	for _, b := range all[offset:end] {
		items = append(items, dto.BillFromEntity(b))
	}
	return &dto.BillListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Get devuelve una factura por ID.
func (uc *BillQueryUseCase) Get(ctx context.Context, id string) (*dto.BillDTO, error) {
	b, err := uc.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.BillFromEntity(b)
	return &out, nil
}
