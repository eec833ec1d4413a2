package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

// SettingsFile nombre del documento de configuración.
const SettingsFile = "settings.json"

var _ repository.SettingsRepository = (*SettingsStore)(nil)

// SettingsStore configuración del sistema en settings.json.
type SettingsStore struct {
	file       *File
	defaultTax decimal.Decimal
}

// NewSettingsStore construye el almacén; defaultTax se usa mientras no haya nada guardado.
func NewSettingsStore(dir string, defaultTax decimal.Decimal) *SettingsStore {
	return &SettingsStore{file: NewFile(filepath.Join(dir, SettingsFile)), defaultTax: defaultTax}
}

// Get devuelve la configuración guardada o los valores por defecto.
// Los formatos de fábrica que falten se agregan.
func (s *SettingsStore) Get(_ context.Context) (*entity.SystemSettings, error) {
	data, err := s.file.Load()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		def := entity.DefaultSettings(s.defaultTax)
		return &def, nil
	}
	raw, err := dto.ParseRawObject(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SettingsFile, err)
	}
	doc, err := dto.DecodeSettings(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SettingsFile, err)
	}
	settings, err := doc.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SettingsFile, err)
	}
	for name, f := range entity.DefaultBillFormats() {
		if _, ok := settings.BillFormats[name]; !ok {
			settings.BillFormats[name] = f
		}
	}
	return settings, nil
}

// Save reemplaza la configuración.
func (s *SettingsStore) Save(_ context.Context, settings *entity.SystemSettings) error {
	data, err := json.MarshalIndent(dto.SettingsFromEntity(settings), "", "  ")
	if err != nil {
		return fmt.Errorf("serializar configuración: %w", err)
	}
	return s.file.Store(data)
}
