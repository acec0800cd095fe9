package consignment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
	"github.com/jhoicas/brecho-pos/internal/domain/settlement"
	"github.com/jhoicas/brecho-pos/pkg/logger"
	"github.com/shopspring/decimal"
)

// VendorUseCase casos de uso de proveedoras de consignación: registro, resumen y pagos.
type VendorUseCase struct {
	vendors           repository.VendorRepository
	payouts           repository.PayoutRepository
	items             repository.ItemRepository
	tx                repository.TxRunner
	defaultCommission decimal.Decimal
	log               *logger.Logger
	now               func() time.Time
}

// NewVendorUseCase construye el caso de uso. defaultCommission se usa cuando el alta no indica comisión.
func NewVendorUseCase(repos repository.Repos, tx repository.TxRunner, defaultCommission decimal.Decimal, log *logger.Logger) *VendorUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &VendorUseCase{
		vendors:           repos.Vendors,
		payouts:           repos.Payouts,
		items:             repos.Items,
		tx:                tx,
		defaultCommission: defaultCommission,
		log:               log.Component("vendor"),
		now:               time.Now,
	}
}

// Create registra una proveedora con saldo cero.
func (uc *VendorUseCase) Create(ctx context.Context, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	rate := uc.defaultCommission
	if in.CommissionRate != nil {
		rate = *in.CommissionRate
	}
	if !settlement.ValidCommissionRate(rate) || !rate.Equal(rate.Round(4)) {
		return nil, fmt.Errorf("%w: la comisión debe estar entre 0 y 1 con hasta cuatro decimales", domain.ErrInvalidInput)
	}
	v := &entity.Vendor{
		ID:             uuid.New().String(),
		Name:           name,
		Phone:          strings.TrimSpace(in.Phone),
		CommissionRate: rate,
		Balance:        decimal.Zero,
		CreatedAt:      uc.now(),
	}
	if err := uc.vendors.Create(ctx, v); err != nil {
		return nil, err
	}
	uc.log.Info().Str("vendor_id", v.ID).Str("commission", rate.String()).Msg("proveedora registrada")
	return dto.NewVendorResponse(v), nil
}

// List devuelve las proveedoras ordenadas por nombre con el conteo de piezas vendidas y a la venta.
func (uc *VendorUseCase) List(ctx context.Context) ([]*dto.VendorResponse, error) {
	vendors, err := uc.vendors.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	type counts struct{ sold, active int }
	byVendor := make(map[string]*counts, len(vendors))
	for _, it := range items {
		if !it.IsConsigned() {
			continue
		}
		c := byVendor[it.VendorID]
		if c == nil {
			c = &counts{}
			byVendor[it.VendorID] = c
		}
		switch it.Status {
		case entity.ItemStatusSold:
			c.sold++
		case entity.ItemStatusForSale:
			c.active++
		}
	}
	out := make([]*dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		resp := dto.NewVendorResponse(v)
		if c := byVendor[v.ID]; c != nil {
			resp.SoldCount = c.sold
			resp.ActiveCount = c.active
		}
		out = append(out, resp)
	}
	return out, nil
}

// Pay registra un pago a la proveedora y descuenta su saldo en una transacción.
// amount debe ser mayor que cero y no superar el saldo; si no, ErrInvalidInput o ErrInsufficientBalance.
func (uc *VendorUseCase) Pay(ctx context.Context, vendorID string, in dto.PayVendorRequest) (*dto.PayVendorResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !settlement.IsCents(in.Amount) {
		return nil, fmt.Errorf("%w: el monto admite como máximo dos decimales", domain.ErrInvalidInput)
	}
	var out *dto.PayVendorResponse
	err := uc.tx.RunInTx(ctx, func(r repository.Repos) error {
		v, err := r.Vendors.GetByID(ctx, vendorID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		if in.Amount.GreaterThan(v.Balance) {
			return fmt.Errorf("%w: saldo %s, pago %s", domain.ErrInsufficientBalance, v.Balance.StringFixed(2), in.Amount.StringFixed(2))
		}
		payout := &entity.VendorPayout{
			ID:        uuid.New().String(),
			VendorID:  vendorID,
			Amount:    in.Amount,
			CreatedAt: uc.now(),
		}
		if err := r.Payouts.Create(ctx, payout); err != nil {
			return fmt.Errorf("registrar pago: %w", err)
		}
		ok, err := r.Vendors.AdjustBalance(ctx, vendorID, in.Amount.Neg())
		if err != nil {
			return fmt.Errorf("descontar saldo: %w", err)
		}
		if !ok {
			return domain.ErrInsufficientBalance
		}
		updated, err := r.Vendors.GetByID(ctx, vendorID)
		if err != nil {
			return err
		}
		out = &dto.PayVendorResponse{Vendor: dto.NewVendorResponse(updated), Payout: dto.NewPayoutResponse(payout)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("vendor_id", vendorID).Str("amount", in.Amount.StringFixed(2)).
		Str("balance", out.Vendor.Balance.StringFixed(2)).Msg("pago a proveedora registrado")
	return out, nil
}

// Payouts historial de pagos de una proveedora.
func (uc *VendorUseCase) Payouts(ctx context.Context, vendorID string) ([]*dto.PayoutResponse, error) {
	v, err := uc.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.payouts.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PayoutResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewPayoutResponse(p))
	}
	return out, nil
}
