// Package pdf genera la orden de compra en PDF de una solicitud.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Departamento + Estado  │  N° PO + Solicitud + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre / TIN / Contacto                          │
//	│  COMPRA: Modalidad / Lugar y fecha de entrega / Términos     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° Prop. | Unidad | Descripción | Cant | Costo | Monto | Form. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + Fondos (fund cluster, ORS/BURS)                     │
//	│  FOOTER: QR (ID + PO) + firmas                               │
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

	appprocurement "github.com/jhoicas/supply-tracker/internal/application/procurement"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
)

var _ appprocurement.PurchaseOrderPDFGenerator = (*PurchaseOrderGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PurchaseOrderGenerator implementa procurement.PurchaseOrderPDFGenerator con Maroto v2.
type PurchaseOrderGenerator struct {
	organization string
}

// NewPurchaseOrderGenerator construye el generador; organization va en el encabezado y como autor.
func NewPurchaseOrderGenerator(organization string) *PurchaseOrderGenerator {
	return &PurchaseOrderGenerator{organization: organization}
}

// GeneratePurchaseOrder genera el PDF y devuelve sus bytes.
func (g *PurchaseOrderGenerator) GeneratePurchaseOrder(req *entity.Request) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de compra "+req.PONumber, true).
		WithAuthor(g.organization, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(req.Supplier))
	m.AddRows(procurementRow(req.Procurement))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(req.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(req))
	m.AddRows(fundingRow(req.Funding))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(req))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *PurchaseOrderGenerator) headerRow(req *entity.Request) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.organization, "Suministros"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Departamento: "+nonEmpty(req.Department, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(req.PONumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New(fmt.Sprintf("%s · %s · %s", req.ID, req.Status, req.RequestedDate.Format("02/01/2006")), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func supplierRow(s entity.Supplier) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(s.Name, "-"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(fmt.Sprintf("TIN: %s   |   Dirección: %s", nonEmpty(s.TIN, "-"), nonEmpty(s.Address, "-")),
				props.Text{Size: 8, Top: 10, Color: colorGray}),
			text.New(fmt.Sprintf("Contacto: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(s.ContactPerson, "-"), nonEmpty(s.ContactNumber, "-"), nonEmpty(s.Email, "-")),
				props.Text{Size: 8, Top: 13, Color: colorGray}),
		),
	)
}

func procurementRow(p entity.ProcurementDetails) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("DETALLES DE LA COMPRA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Modalidad: %s   |   Propósito: %s",
				nonEmpty(p.ModeOfProcurement, "-"), nonEmpty(p.Purpose, "-")),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("Entrega: %s, %s (%s)   |   Pago: %s",
				nonEmpty(p.PlaceOfDelivery, "-"), nonEmpty(p.DeliveryDate, "-"),
				nonEmpty(p.DeliveryTerm, "-"), nonEmpty(p.PaymentTerm, "-")),
				props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N° Prop.", 2, align.Left),
		h("Unidad", 1, align.Center),
		h("Descripción", 4, align.Left),
		h("Cant.", 1, align.Center),
		h("Costo", 1, align.Right),
		h("Monto", 2, align.Right),
		h("Form.", 1, align.Center),
	)
}

func itemRows(items []entity.LineItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			cell(it.StockPropertyNumber, 2, align.Left),
			cell(it.Unit, 1, align.Center),
			cell(it.Description, 4, align.Left),
			cell(it.Quantity.String(), 1, align.Center),
			cell(formatMoney(it.UnitCost), 1, align.Right),
			cell(formatMoney(it.Amount), 2, align.Right),
			cell(formsLabel(it.Forms), 1, align.Center),
		))
	}
	return rows
}

func totalRow(req *entity.Request) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(formatMoney(req.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func fundingRow(f entity.Funding) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("FONDOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Fund cluster: %s   |   Disponible: %s   |   ORS/BURS: %s (%s)",
				nonEmpty(f.FundCluster, "-"), nonEmpty(f.FundsAvailable, "-"),
				nonEmpty(f.ORSBURSNumber, "-"), nonEmpty(f.ORSBURSDate, "-")),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func footerRow(req *entity.Request) core.Row {
	approved := "Pendiente de aprobación"
	if req.ApprovedBy != "" && req.ApprovedDate != nil {
		approved = fmt.Sprintf("Aprobado por %s el %s", req.ApprovedBy, req.ApprovedDate.Format("02/01/2006"))
	}
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(req.ID+"|"+req.PONumber, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Solicitado por: "+nonEmpty(req.RequestedBy, "-"), props.Text{Size: 9, Top: 4, Left: 3}),
			text.New(approved, props.Text{Size: 9, Top: 12, Left: 3, Color: colorGray}),
			text.New(nonEmpty(req.Funding.Remarks, ""), props.Text{Size: 7, Top: 22, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formsLabel(forms entity.FormSet) string {
	kinds := forms.Sorted()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, strings.ToUpper(string(k)))
	}
	return strings.Join(names, ",")
}

// formatMoney formatea con dos decimales y puntos de miles. Ej: 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
