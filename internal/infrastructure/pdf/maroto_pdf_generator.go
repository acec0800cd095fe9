// Package pdf genera el comprobante de venta del PDV (no fiscal) con Maroto v2.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: Tienda          │  Venta #XXXX       │
//	│  ──────────────────────────────────────────  │
//	│  CLIENTE: Nombre + CPF (si hay)               │
//	│  ──────────────────────────────────────────  │
//	│  TABLA: Pieza | Talla | Estado | Precio       │
//	│  ──────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Crédito      │
//	│           TOTAL / Forma de pago               │
//	│  ──────────────────────────────────────────  │
//	│  FOOTER: QR con el ID de la venta             │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/brecho-pos/internal/application/sales"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
)

var _ sales.ReceiptGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 60, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var paymentLabels = map[entity.PaymentMethod]string{
	entity.PaymentCash:   "Dinheiro",
	entity.PaymentCard:   "Cartão",
	entity.PaymentPix:    "Pix",
	entity.PaymentCredit: "Crédito da loja",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSaleReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSaleReceipt(_ context.Context, r *sales.Receipt) ([]byte, error) {
	if r == nil || r.Sale == nil {
		return nil, errors.New("pdf: venta vacía")
	}
	store := nonEmpty(r.StoreName, "Brechó")

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de venda", true).
		WithAuthor(store, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(store, r.Sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if r.Customer != nil {
		m.AddRows(customerRow(r.Customer))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(r.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(r.Sale)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y número corto + fecha (der).
func headerRow(store string, sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(store, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprovante não fiscal", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Venda #"+ShortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func customerRow(c *entity.Customer) core.Row {
	detail := "CPF: " + nonEmpty(c.TaxID, "—")
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name+"   |   "+detail, props.Text{Size: 9, Top: 6}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de piezas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Peça", 5, align.Left),
		h("Tam.", 2, align.Center),
		h("Estado", 2, align.Center),
		h("Preço", 3, align.Right),
	)
}

// tableDetailRows: una fila por pieza vendida.
func tableDetailRows(lines []sales.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name, size, cond := "Peça removida", "—", "—"
		if l.Item != nil {
			name = nonEmpty(l.Item.Category, "Peça")
			size = nonEmpty(l.Item.Size, "—")
			cond = l.Item.Condition.Label()
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(size, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(cond, props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(FormatMoney(l.PriceSold), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(r *sales.Receipt) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top,
		})
	}

	sale := r.Sale
	method := paymentLabels[sale.PaymentMethod]
	if method == "" {
		method = string(sale.PaymentMethod)
	}

	return row.New(30).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", 0),
			label("Desconto:", 5),
			label("Crédito usado:", 10),
			label("TOTAL:", 16),
			label("Pagamento:", 23),
		),
		col.New(4).Add(
			value(FormatMoney(r.Subtotal), 0),
			value("- "+FormatMoney(sale.Discount), 5),
			value("- "+FormatMoney(sale.CreditUsed), 10),
			grand(FormatMoney(sale.Total), 16),
			value(method, 23),
		),
	)
}

// footerRows: QR con el ID completo de la venta para búsqueda en el PDV.
func footerRows(sale *entity.Sale) []core.Row {
	return []core.Row{
		row.New(30).Add(
			col.New(4).Add(code.NewQr(sale.ID, props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(
				text.New("Obrigado pela preferência!", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 6, Left: 3, Color: colorPrimary,
				}),
				text.New("Trocas somente com este comprovante.", props.Text{
					Size: 7, Top: 14, Left: 3, Color: colorGray,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// ShortID últimos 4 caracteres del ID, en mayúsculas.
func ShortID(id string) string {
	if len(id) > 4 {
		id = id[len(id)-4:]
	}
	return strings.ToUpper(id)
}

// FormatMoney formatea en pt-BR: "R$ 1.234,50".
func FormatMoney(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := "R$ " + string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
