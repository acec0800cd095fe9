package coupon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
	"github.com/jhoicas/brecho-pos/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CouponUseCase casos de uso de cupones de descuento.
type CouponUseCase struct {
	repo repository.CouponRepository
}

// NewCouponUseCase construye el caso de uso.
func NewCouponUseCase(repo repository.CouponRepository) *CouponUseCase {
	return &CouponUseCase{repo: repo}
}

// Create crea un cupón. El código se guarda tal cual (la validación en checkout distingue mayúsculas).
func (uc *CouponUseCase) Create(ctx context.Context, in dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: el código es obligatorio", domain.ErrInvalidInput)
	}
	typ, err := entity.ParseCouponType(in.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !in.Value.IsPositive() {
		return nil, fmt.Errorf("%w: el valor debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !settlement.IsCents(in.Value) {
		return nil, fmt.Errorf("%w: el valor admite como máximo dos decimales", domain.ErrInvalidInput)
	}
	if typ == entity.CouponPercent && in.Value.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: un porcentaje no puede superar 100", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	c := &entity.Coupon{Code: code, Type: typ, Value: in.Value, Active: active, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return dto.NewCouponResponse(c), nil
}

// List devuelve todos los cupones.
func (uc *CouponUseCase) List(ctx context.Context) ([]*dto.CouponResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CouponResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCouponResponse(c))
	}
	return out, nil
}

// SetActive activa o desactiva un cupón existente.
func (uc *CouponUseCase) SetActive(ctx context.Context, code string, active bool) (*dto.CouponResponse, error) {
	c, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetActive(ctx, code, active); err != nil {
		return nil, err
	}
	c.Active = active
	return dto.NewCouponResponse(c), nil
}
