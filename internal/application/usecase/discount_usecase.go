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

// NotificationsTopic tema del registro de cambios donde se avisan las solicitudes nuevas.
const NotificationsTopic = "notifications"

var decimalHundred = decimal.NewFromInt(100)

// DiscountUseCase solicitudes de descuento: un cajero la crea pendiente y un administrador
// la aprueba o rechaza.
type DiscountUseCase struct {
	repo    repository.DiscountRepository
	notify  repository.ChangeLogger
	log     *logger.Logger
	newID   func() string
	nowFunc func() time.Time
}

// NewDiscountUseCase construye el caso de uso. notify y log pueden ser nil.
func NewDiscountUseCase(repo repository.DiscountRepository, notify repository.ChangeLogger, log *logger.Logger) *DiscountUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DiscountUseCase{
		repo:    repo,
		notify:  notify,
		log:     log.Named("discounts"),
		newID:   newDiscountID,
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
}

func newDiscountID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "DISC-" + strings.ToUpper(hex[:12])
}

// Create registra una solicitud pendiente y avisa. userID es el usuario autenticado y se
// usa cuando el body no trae uno. Un aviso fallido no falla la solicitud.
func (uc *DiscountUseCase) Create(ctx context.Context, in dto.CreateDiscountRequest, userID string) (*dto.DiscountResponse, error) {
	if in.Percentage.IsNegative() || in.Percentage.GreaterThan(decimalHundred) || in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Percentage.IsZero() && in.Amount.IsZero() {
		return nil, fmt.Errorf("descuento vacío: %w", domain.ErrInvalidInput)
	}
	requester := strings.TrimSpace(in.UserID)
	if requester == "" {
		requester = userID
	}
	now := uc.nowFunc()
	d := &entity.DiscountRequest{
		ID:         uc.newID(),
		UserID:     requester,
		Percentage: in.Percentage,
		Amount:     in.Amount,
		BillID:     strings.TrimSpace(in.BillID),
		Status:     entity.DiscountPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	uc.announce(d)
	out := dto.DiscountFromEntity(d)
	return &out, nil
}

func (uc *DiscountUseCase) announce(d *entity.DiscountRequest) {
	if uc.notify == nil {
		return
	}
	if err := uc.notify.Append(NotificationsTopic, DiscountNotification(d)); err != nil {
		uc.log.Warn().Err(err).Str("discount_id", d.ID).Msg("no se pudo avisar la solicitud de descuento")
	}
}

// DiscountNotification texto del aviso de una solicitud nueva.
func DiscountNotification(d *entity.DiscountRequest) string {
	parts := []string{"DISCOUNT_REQUEST: Discount request " + d.ID}
	if d.UserID != "" {
		parts = append(parts, "by user "+d.UserID)
	}
	if d.BillID != "" {
		parts = append(parts, "for bill "+d.BillID)
	}
	parts = append(parts, fmt.Sprintf("(%s%%, amount ₹%s)", d.Percentage.String(), d.Amount.StringFixed(2)))
	return strings.Join(parts, " ")
}

// UpdateStatus resuelve una solicitud. approverID queda registrado salvo al volver a pendiente.
func (uc *DiscountUseCase) UpdateStatus(ctx context.Context, id string, in dto.DiscountStatusRequest, approverID string) (*dto.DiscountResponse, error) {
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if !entity.ValidDiscountStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", in.Status, domain.ErrInvalidInput)
	}
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	d.Status = status
	d.ApprovedBy = ""
	if status != entity.DiscountPending {
		d.ApprovedBy = approverID
	}
	d.UpdatedAt = uc.nowFunc()
	if err := uc.repo.UpdateStatus(ctx, d); err != nil {
		return nil, err
	}
	uc.log.Info().Str("discount_id", d.ID).Str("status", status).Msg("solicitud de descuento resuelta")
	out := dto.DiscountFromEntity(d)
	return &out, nil
}

// Delete borra varias solicitudes. ErrNotFound si ninguna existía.
func (uc *DiscountUseCase) Delete(ctx context.Context, in dto.DeleteDiscountsRequest) (*dto.DeleteDiscountsResponse, error) {
	ids := make([]string, 0, len(in.IDs))
	for _, id := range in.IDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}
	n, err := uc.repo.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return &dto.DeleteDiscountsResponse{Deleted: n}, nil
}

// List lista solicitudes, las más recientes primero.
func (uc *DiscountUseCase) List(ctx context.Context, limit, offset int) (*dto.DiscountListResponse, error) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DiscountResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.DiscountFromEntity(d))
	}
	return &dto.DiscountListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}
