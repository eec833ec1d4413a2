package repository

import (
	"context"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

// SettingsRepository lectura/escritura de la configuración del sistema.
// Get devuelve valores por defecto si todavía no hay nada guardado.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.SystemSettings, error)
	Save(ctx context.Context, settings *entity.SystemSettings) error
}
