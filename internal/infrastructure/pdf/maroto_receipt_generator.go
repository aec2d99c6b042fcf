// Package pdf genera el comprobante PDF de una orden.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda               │  N° Orden + Fecha + Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ENVÍO: Nombre + dirección + método                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total línea               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Envío / Impuesto / TOTAL                │
//	│  FOOTER: QR con el número de orden + leyenda                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/peptide-store/internal/application/checkout"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
)

var _ checkout.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 24, Green: 54, Blue: 96}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa checkout.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	if storeName == "" {
		storeName = "Peptide Store"
	}
	return &MarotoReceiptGenerator{storeName: storeName}
}

// GenerateOrderReceipt genera el PDF de la orden (con sus Items cargados) y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateOrderReceipt(order *entity.Order) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: orden nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Order "+order.OrderNumber, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shippingRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(order.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReceiptGenerator) headerRow(order *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("For research use only", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDER RECEIPT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(order.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New(fmt.Sprintf("Date: %s   |   Status: %s",
				order.CreatedAt.Format("2006-01-02"), strings.ToUpper(order.Status),
			), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

func shippingRow(order *entity.Order) core.Row {
	a := order.ShippingAddress
	cityLine := strings.TrimSpace(strings.Join(nonEmptyParts(a.City, a.State, a.PostalCode, a.Country), ", "))
	return row.New(18).Add(
		col.New(12).Add(
			text.New("SHIP TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(a.FullName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s   |   %s   |   Method: %s",
				nonEmpty(strings.TrimSpace(a.Address1+" "+a.Address2), "—"),
				nonEmpty(cityLine, "—"),
				order.ShippingMethod,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Product", 6, align.Left),
		h("Unit price", 2, align.Right),
		h("Line total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []*entity.OrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatMoney(it.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(order *entity.Order) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 18}

	grandLabel := grand
	grandLabel.Right = 2
	grandValue := grand
	grandValue.Right = 1

	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Shipping:", 6),
			label("Tax:", 11),
			text.New("TOTAL:", grandLabel),
		),
		col.New(3).Add(
			value(formatMoney(order.Subtotal), 1),
			value(formatMoney(order.Shipping), 6),
			value(formatMoney(order.Tax), 11),
			text.New(formatMoney(order.Total), grandValue),
		),
	)
}

func footerRow(order *entity.Order) core.Row {
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(order.OrderNumber, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Keep this receipt for your records.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Quote the order number in any inquiry about this purchase.", props.Text{
				Size: 8, Top: 10, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea con separador de miles y 2 decimales: 1234.5 → "$1,234.50".
func formatMoney(d decimal.Decimal) string {
	return message.NewPrinter(language.AmericanEnglish).Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonEmptyParts(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
