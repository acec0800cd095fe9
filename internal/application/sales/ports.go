package sales

import (
	"context"

	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemPreparer valida y construye una pieza nueva (con la imagen ya subida) sin persistirla.
// Lo implementa inventory.ItemUseCase.
type ItemPreparer interface {
	Prepare(ctx context.Context, in dto.CreateItemRequest) (*entity.Item, error)
}

// ReceiptLine pieza vendida con el precio del momento. Item es nil si la pieza ya fue eliminada.
type ReceiptLine struct {
	ItemID    string
	Item      *entity.Item
	PriceSold decimal.Decimal
}

// Receipt datos necesarios para el comprobante de una venta.
type Receipt struct {
	StoreName string
	Sale      *entity.Sale
	Customer  *entity.Customer // nil en ventas sin cliente
	Lines     []ReceiptLine
	Subtotal  decimal.Decimal
}

// ReceiptGenerator define el puerto para generar la representación gráfica (PDF) de una venta.
type ReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, r *Receipt) ([]byte, error)
}
