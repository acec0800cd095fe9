package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	lifecycle "github.com/jhoicas/brecho-pos/internal/domain/inventory"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
	"github.com/jhoicas/brecho-pos/internal/domain/settlement"
	"github.com/jhoicas/brecho-pos/pkg/logger"
	"github.com/shopspring/decimal"
)

// tradeInCreditDescription descripción del movimiento de crédito generado por una troca.
const tradeInCreditDescription = "Troca de peças"

// Config parámetros de precios del PDV.
type Config struct {
	StoreName         string
	TradeInMultiplier decimal.Decimal // precio sugerido = crédito * multiplicador
}

// SaleUseCase casos de uso del PDV: cotización, checkout, troca, historial y comprobante.
type SaleUseCase struct {
	repos    repository.Repos
	tx       repository.TxRunner
	items    ItemPreparer
	receipts ReceiptGenerator
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso inyectando todas sus dependencias.
func NewSaleUseCase(
	repos repository.Repos,
	tx repository.TxRunner,
	items ItemPreparer,
	receipts ReceiptGenerator,
	cfg Config,
	log *logger.Logger,
) *SaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if !cfg.TradeInMultiplier.IsPositive() {
		cfg.TradeInMultiplier = decimal.NewFromInt(2)
	}
	return &SaleUseCase{
		repos:    repos,
		tx:       tx,
		items:    items,
		receipts: receipts,
		cfg:      cfg,
		log:      log.Component("sales"),
		now:      time.Now,
	}
}

// cart carrito resuelto contra el almacén.
type cart struct {
	items    []*entity.Item
	coupon   *entity.Coupon
	customer *entity.Customer
	totals   settlement.Totals
}

// resolveCart carga piezas, cupón y cliente y calcula los totales.
// Un cupón inválido devuelve el carrito sin descuento junto con ErrInvalidCoupon.
func (uc *SaleUseCase) resolveCart(ctx context.Context, r repository.Repos, in dto.QuoteRequest) (*cart, error) {
	if len(in.ItemIDs) == 0 {
		return nil, fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(in.ItemIDs))
	for _, id := range in.ItemIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: pieza %s repetida en el carrito", domain.ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	found, err := r.Items.GetByIDs(ctx, in.ItemIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Item, len(found))
	for _, it := range found {
		byID[it.ID] = it
	}
	items := make([]*entity.Item, 0, len(in.ItemIDs))
	for _, id := range in.ItemIDs {
		it, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: pieza %s", domain.ErrNotFound, id)
		}
		if it.Status != entity.ItemStatusForSale {
			return nil, fmt.Errorf("%w: pieza %s en %s", domain.ErrItemUnavailable, id, it.Status)
		}
		items = append(items, it)
	}

	c := &cart{items: items}
	if in.CustomerID != "" {
		customer, err := r.Customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
		}
		c.customer = customer
	}

	var couponErr error
	if in.CouponCode != "" {
		stored, err := r.Coupons.GetByCode(ctx, in.CouponCode)
		if err != nil {
			return nil, err
		}
		var candidates []*entity.Coupon
		if stored != nil {
			candidates = append(candidates, stored)
		}
		c.coupon, couponErr = settlement.FindCoupon(candidates, in.CouponCode)
	}
	c.totals = settlement.ComputeSaleTotal(c.items, c.coupon, c.customer, in.UseCredit)
	return c, couponErr
}

func quoteResponse(c *cart) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		Subtotal:   c.totals.Subtotal,
		Discount:   c.totals.Discount,
		CreditUsed: c.totals.CreditUsed,
		Total:      c.totals.Total,
	}
	if c.coupon != nil {
		resp.CouponCode = c.coupon.Code
	}
	return resp
}

// Quote calcula los totales del carrito sin efectos. Con un cupón inválido devuelve
// la cotización sin descuento y ErrInvalidCoupon, para que el llamador avise sin bloquear la venta.
func (uc *SaleUseCase) Quote(ctx context.Context, in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	c, err := uc.resolveCart(ctx, uc.repos, in)
	if c == nil {
		return nil, err
	}
	return quoteResponse(c), err
}

// ProcessSale registra la venta y aplica todos sus efectos en una única transacción:
// venta, piezas vendidas al precio del momento, FOR_SALE -> SOLD, comisión de proveedoras
// y débito del crédito del cliente con su movimiento en el extracto.
// Si alguna pieza ya fue vendida la venta completa falla con ErrItemUnavailable.
func (uc *SaleUseCase) ProcessSale(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	method, err := entity.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.CustomerID == "" && in.UseCredit {
		return nil, fmt.Errorf("%w: usar crédito requiere un cliente", domain.ErrInvalidInput)
	}

	var out *dto.CheckoutResponse
	err = uc.tx.RunInTx(ctx, func(r repository.Repos) error {
		c, err := uc.resolveCart(ctx, r, in.QuoteRequest)
		if err != nil {
			return err
		}
		now := uc.now()
		sale, err := r.Sales.Create(ctx, &entity.Sale{
			ID:            uuid.New().String(),
			CustomerID:    in.CustomerID,
			Total:         c.totals.Total,
			Discount:      c.totals.Discount,
			CreditUsed:    c.totals.CreditUsed,
			PaymentMethod: method,
			CreatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("registrar venta: %w", err)
		}

		lines := make([]entity.SaleItem, 0, len(c.items))
		for _, it := range c.items {
			lines = append(lines, entity.SaleItem{SaleID: sale.ID, ItemID: it.ID, PriceSold: it.Price})
		}
		if err := r.Sales.AddItems(ctx, lines); err != nil {
			return fmt.Errorf("vincular piezas: %w", err)
		}
		sale.Items = lines

		for _, it := range c.items {
			if err := lifecycle.Transition(it, entity.ItemStatusSold, now); err != nil {
				return err
			}
			ok, err := r.Items.UpdateStatus(ctx, it.ID, entity.ItemStatusForSale, entity.ItemStatusSold, it.SoldAt)
			if err != nil {
				return fmt.Errorf("marcar pieza vendida: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: pieza %s", domain.ErrItemUnavailable, it.ID)
			}
		}

		vendors, err := uc.creditVendors(ctx, r, c.items)
		if err != nil {
			return err
		}

		customer := c.customer
		if customer != nil && c.totals.CreditUsed.IsPositive() {
			customer, err = uc.spendCredit(ctx, r, customer.ID, sale, now)
			if err != nil {
				return err
			}
		}

		out = &dto.CheckoutResponse{
			Sale:     dto.NewSaleResponse(sale),
			Items:    dto.NewItemResponses(c.items),
			Vendors:  vendors,
			Customer: dto.NewCustomerResponse(customer),
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrInvalidCoupon) {
			uc.log.Error().Err(err).Strs("item_ids", in.ItemIDs).Msg("checkout revertido")
		}
		return nil, err
	}
	uc.log.Info().
		Str("sale_id", out.Sale.ID).
		Str("total", out.Sale.Total.StringFixed(2)).
		Str("credit_used", out.Sale.CreditUsed.StringFixed(2)).
		Str("payment_method", out.Sale.PaymentMethod).
		Int("items", len(out.Items)).
		Msg("venta registrada")
	return out, nil
}

// creditVendors acredita a cada proveedora precio * comisión por cada pieza suya vendida.
// Piezas de una proveedora inexistente se venden sin comisión.
func (uc *SaleUseCase) creditVendors(ctx context.Context, r repository.Repos, items []*entity.Item) ([]*dto.VendorResponse, error) {
	known := make(map[string]*entity.Vendor)
	var order []string
	for _, it := range items {
		if !it.IsConsigned() {
			continue
		}
		v, ok := known[it.VendorID]
		if !ok {
			var err error
			v, err = r.Vendors.GetByID(ctx, it.VendorID)
			if err != nil {
				return nil, err
			}
			known[it.VendorID] = v
			if v != nil {
				order = append(order, v.ID)
			}
		}
		if v == nil {
			uc.log.Warn().Str("item_id", it.ID).Str("vendor_id", it.VendorID).Msg("proveedora inexistente, pieza vendida sin comisión")
			continue
		}
		share := settlement.VendorShare(it.Price, v.CommissionRate)
		if _, err := r.Vendors.AdjustBalance(ctx, v.ID, share); err != nil {
			return nil, fmt.Errorf("acreditar proveedora: %w", err)
		}
	}
	out := make([]*dto.VendorResponse, 0, len(order))
	for _, id := range order {
		v, err := r.Vendors.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewVendorResponse(v))
	}
	return out, nil
}

// spendCredit debita sale.CreditUsed del cliente y registra CREDIT_SPENT.
func (uc *SaleUseCase) spendCredit(ctx context.Context, r repository.Repos, customerID string, sale *entity.Sale, now time.Time) (*entity.Customer, error) {
	ok, err := r.Customers.AdjustCredit(ctx, customerID, sale.CreditUsed.Neg())
	if err != nil {
		return nil, fmt.Errorf("debitar crédito: %w", err)
	}
	if !ok {
		return nil, domain.ErrInsufficientCredit
	}
	if err := r.CustomerTxs.Create(ctx, &entity.CustomerTransaction{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		Type:          entity.CreditSpent,
		Amount:        sale.CreditUsed,
		Description:   "Venda #" + shortID(sale.ID),
		RelatedSaleID: sale.ID,
		CreatedAt:     now,
	}); err != nil {
		return nil, fmt.Errorf("registrar movimiento de crédito: %w", err)
	}
	return r.Customers.GetByID(ctx, customerID)
}

// shortID últimos 4 caracteres del identificador.
func shortID(id string) string {
	if len(id) <= 4 {
		return id
	}
	return id[len(id)-4:]
}

// ProcessTradeIn acredita creditAmount al cliente, registra CREDIT_ADDED e ingresa las piezas
// recibidas en EVALUATION como stock propio. Las imágenes se suben antes de abrir la transacción.
func (uc *SaleUseCase) ProcessTradeIn(ctx context.Context, in dto.TradeInRequest) (*dto.TradeInResponse, error) {
	if !in.CreditAmount.IsPositive() {
		return nil, fmt.Errorf("%w: el crédito de la troca debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !settlement.IsCents(in.CreditAmount) {
		return nil, fmt.Errorf("%w: el crédito admite como máximo dos decimales", domain.ErrInvalidInput)
	}
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: la troca requiere un cliente", domain.ErrInvalidInput)
	}

	incoming := make([]*entity.Item, 0, len(in.Items))
	for _, draft := range in.Items {
		item, err := uc.items.Prepare(ctx, uc.tradeInDraft(draft, in.CreditAmount))
		if err != nil {
			return nil, err
		}
		incoming = append(incoming, item)
	}

	var out *dto.TradeInResponse
	err := uc.tx.RunInTx(ctx, func(r repository.Repos) error {
		ok, err := r.Customers.AdjustCredit(ctx, in.CustomerID, in.CreditAmount)
		if err != nil {
			return fmt.Errorf("acreditar cliente: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
		}
		if err := r.CustomerTxs.Create(ctx, &entity.CustomerTransaction{
			ID:          uuid.New().String(),
			CustomerID:  in.CustomerID,
			Type:        entity.CreditAdded,
			Amount:      in.CreditAmount,
			Description: tradeInCreditDescription,
			CreatedAt:   uc.now(),
		}); err != nil {
			return fmt.Errorf("registrar movimiento de crédito: %w", err)
		}
		for _, it := range incoming {
			if err := r.Items.Create(ctx, it); err != nil {
				return fmt.Errorf("ingresar pieza de troca: %w", err)
			}
		}
		customer, err := r.Customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		out = &dto.TradeInResponse{Customer: dto.NewCustomerResponse(customer), Items: dto.NewItemResponses(incoming)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("customer_id", in.CustomerID).
		Str("credit", in.CreditAmount.StringFixed(2)).
		Int("items", len(incoming)).
		Msg("troca registrada")
	return out, nil
}

// tradeInDraft completa los valores por defecto de una pieza recibida en troca.
func (uc *SaleUseCase) tradeInDraft(in dto.TradeInItemRequest, credit decimal.Decimal) dto.CreateItemRequest {
	condition := in.Condition
	if condition == "" {
		condition = string(entity.ConditionGood)
	}
	price := settlement.RoundMoney(credit.Mul(uc.cfg.TradeInMultiplier))
	if in.Price != nil {
		price = *in.Price
	}
	return dto.CreateItemRequest{
		Image:       in.Image,
		Category:    in.Category,
		Size:        in.Size,
		Condition:   condition,
		Price:       price,
		Description: entity.TradeInProvenance,
	}
}

// List devuelve el historial de ventas de la más reciente a la más antigua.
func (uc *SaleUseCase) List(ctx context.Context) ([]*dto.SaleResponse, error) {
	list, err := uc.repos.Sales.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSaleResponse(s))
	}
	return out, nil
}

// Get obtiene una venta con sus piezas. Devuelve (nil, nil) si no existe.
func (uc *SaleUseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return dto.NewSaleResponse(s), nil
}

// Receipt genera el comprobante PDF de una venta.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la venta no existe.
func (uc *SaleUseCase) Receipt(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	if uc.receipts == nil {
		return nil, "", errors.New("pdf: generador de comprobantes no configurado")
	}
	sale, err := uc.repos.Sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	r := &Receipt{StoreName: uc.cfg.StoreName, Sale: sale, Subtotal: decimal.Zero}
	if sale.CustomerID != "" {
		r.Customer, err = uc.repos.Customers.GetByID(ctx, sale.CustomerID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
		}
	}
	for _, line := range sale.Items {
		item, err := uc.repos.Items.GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener pieza: %w", err)
		}
		r.Lines = append(r.Lines, ReceiptLine{ItemID: line.ItemID, Item: item, PriceSold: line.PriceSold})
		r.Subtotal = r.Subtotal.Add(line.PriceSold)
	}
	pdfBytes, err = uc.receipts.GenerateSaleReceipt(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("venda_%s.pdf", shortID(sale.ID)), nil
}
