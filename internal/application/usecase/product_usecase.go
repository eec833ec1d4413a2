package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
	"github.com/jhoicas/pos-billing-api/pkg/logger"
)

// ProductUseCase CRUD del catálogo. La base relacional es la fuente; el espejo (JSON o Mongo)
// se actualiza a continuación y sus fallas solo se registran.
type ProductUseCase struct {
	repo   repository.ProductRepository
	mirror repository.ProductMirror
	log    *logger.Logger
}

// NewProductUseCase construye el caso de uso. mirror puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, mirror repository.ProductMirror, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, mirror: mirror, log: log.Named("products")}
}

// Create crea un nuevo producto. Si no trae ID se genera uno.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	var tax decimal.NullDecimal
	if in.TaxPercentage != nil {
		if in.TaxPercentage.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		tax = decimal.NewNullDecimal(*in.TaxPercentage)
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.New().String()
	} else {
		existing, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("buscar producto: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:            id,
		Name:          name,
		Price:         in.Price,
		Barcode:       entity.NormalizeBarcodes(in.Barcode),
		Stock:         in.Stock,
		TaxPercentage: tax,
		HSNCode:       strings.TrimSpace(in.HSNCode),
		BatchID:       strings.TrimSpace(in.BatchID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.mirrorUpsert(ctx, product)
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// Update actualiza los campos enviados. Stock se puede fijar a mano (reposición).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Barcode != nil {
		product.Barcode = entity.NormalizeBarcodes(*in.Barcode)
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.TaxPercentage != nil {
		if in.TaxPercentage.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.TaxPercentage = decimal.NewNullDecimal(*in.TaxPercentage)
	}
	if in.ClearTaxPercentage {
		product.TaxPercentage = decimal.NullDecimal{}
	}
	if in.HSNCode != nil {
		product.HSNCode = strings.TrimSpace(*in.HSNCode)
	}
	if in.BatchID != nil {
		product.BatchID = strings.TrimSpace(*in.BatchID)
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.mirrorUpsert(ctx, product)
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductFromEntity(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto. Las facturas emitidas conservan su copia de la línea.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if uc.mirror != nil {
		if err := uc.mirror.Delete(ctx, id); err != nil {
			uc.log.Warn().Err(err).Str("product_id", id).Msg("no se pudo borrar del espejo")
		}
	}
	return nil
}

// SyncMirror reescribe el espejo completo con el catálogo relacional.
func (uc *ProductUseCase) SyncMirror(ctx context.Context) (*dto.SyncMirrorResponse, error) {
	if uc.mirror == nil {
		return nil, fmt.Errorf("espejo de productos no configurado: %w", domain.ErrConflict)
	}
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.mirror.WriteAll(ctx, list); err != nil {
		return nil, fmt.Errorf("escribir espejo: %w", err)
	}
	uc.log.Info().Int("products", len(list)).Msg("espejo sincronizado")
	return &dto.SyncMirrorResponse{Products: len(list)}, nil
}

func (uc *ProductUseCase) mirrorUpsert(ctx context.Context, p *entity.Product) {
	if uc.mirror == nil {
		return
	}
	if err := uc.mirror.Upsert(ctx, p); err != nil {
		uc.log.Warn().Err(err).Str("product_id", p.ID).Msg("no se pudo actualizar el espejo")
	}
}
