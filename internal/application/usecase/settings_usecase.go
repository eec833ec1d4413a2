package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

// SettingsUseCase lectura y actualización de la configuración de empresa.
// Los cambios solo afectan a facturas nuevas.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve la configuración vigente.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsDTO, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := dto.SettingsFromEntity(s)
	return &out, nil
}

// Update reemplaza la configuración. Los formatos no enviados se conservan.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.SettingsDTO) (*dto.SettingsDTO, error) {
	if in.TaxPercentage.IsNegative() {
		return nil, fmt.Errorf("taxPercentage negativo: %w", domain.ErrInvalidInput)
	}
	next, err := in.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("formato de factura: %w", domain.ErrInvalidInput)
	}
	for name, f := range next.BillFormats {
		if strings.TrimSpace(name) == "" || !f.Width.IsPositive() || f.Height.IsNegative() {
			return nil, fmt.Errorf("formato %q: %w", name, domain.ErrInvalidInput)
		}
	}

	current, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	for name, f := range current.BillFormats {
		if _, ok := next.BillFormats[name]; !ok {
			next.BillFormats[name] = f
		}
	}
	if err := uc.repo.Save(ctx, next); err != nil {
		return nil, err
	}
	out := dto.SettingsFromEntity(next)
	return &out, nil
}

// BillFormat devuelve las dimensiones de un formato por nombre.
func (uc *SettingsUseCase) BillFormat(ctx context.Context, name string) (*dto.BillFormatDTO, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	f, ok := s.BillFormats[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := dto.BillFormatFromEntity(f)
	return &out, nil
}
