package infra

// pdf.go — Receipt rendering using go-pdf/fpdf.
// Two visual templates share the same data:
//   - "informal":    half-letter landscape card with a hand-written feel and an
//     auto-generated amount-in-words line.
//   - "profesional": A5 portrait layout with a boxed amount table and a
//     previous-payments / balance breakdown.
//
// The output file is saved to storagePath/recibo_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/lgalindop/emociones-viajes-sub000/internal/letras"
)

// ReciboPDFData carries everything the renderer needs. It is a value object
// composed by the service at generation time, not a database entity.
type ReciboPDFData struct {
	Numero        string
	Fecha         time.Time
	NombreAgencia string
	Cliente       string
	FolioVenta    string
	Destino       string
	Moneda        string
	Monto         decimal.Decimal
	PagosPrevios  decimal.Decimal
	Saldo         decimal.Decimal
	MetodoPago    string
	Plantilla     string // "informal" | "profesional"
}

// GenerateReciboPDF renders the receipt and returns the absolute path to the
// generated file. storagePath is created if needed.
func GenerateReciboPDF(data ReciboPDFData, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", strings.ReplaceAll(data.Numero, "/", "-"))
	filePath := filepath.Join(storagePath, fileName)

	var pdf *fpdf.Fpdf
	if data.Plantilla == "profesional" {
		pdf = renderProfesional(data)
	} else {
		pdf = renderInformal(data)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// renderInformal produces the casual half-letter template. The amount line is
// spelled out in Spanish words for totals under 100,000; larger amounts fall
// back to a plain formatted numeral.
func renderInformal(data ReciboPDFData) *fpdf.Fpdf {
	// Half letter landscape ≈ 216mm × 140mm
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 216, Ht: 140},
	})
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, data.NombreAgencia, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Recibo de pago", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW/2, 6, data.Numero, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, data.Fecha.Format("02/01/2006"), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(4)

	// ── Body ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Recibimos de: %s", data.Cliente), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Por concepto de: pago de viaje %s (%s)", data.Destino, data.FolioVenta), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 8, fmt.Sprintf("$%s %s", data.Monto.StringFixed(2), data.Moneda), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(contentW, 6, "("+letras.MontoEnLetras(data.Monto, data.Moneda)+")", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Balance ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, fmt.Sprintf("Pagos anteriores: $%s", data.PagosPrevios.StringFixed(2)), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, fmt.Sprintf("Saldo pendiente: $%s", data.Saldo.StringFixed(2)), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(12)
	pdf.Line(pageW/2-30, pdf.GetY(), pageW/2+30, pdf.GetY())
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Firma y sello", "", 1, "C", false, 0, "")

	return pdf
}

// renderProfesional produces the formal A5 template with boxed tables.
func renderProfesional(data ReciboPDFData) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 28

	// ── Header band ──────────────────────────────────────────────────────────
	pdf.SetFillColor(31, 56, 100)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 10, data.NombreAgencia, "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW/2, 8, "RECIBO DE PAGO", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 8, data.Numero, "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Fecha de emisión: "+data.Fecha.Format("02/01/2006"), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	// ── Detail rows ──────────────────────────────────────────────────────────
	rows := [][2]string{
		{"Cliente", data.Cliente},
		{"Venta", data.FolioVenta},
		{"Destino", data.Destino},
		{"Método de pago", data.MetodoPago},
	}
	labelW := contentW * 0.35
	valueW := contentW * 0.65
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, 7, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Amount table ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 238, 245)
	pdf.CellFormat(labelW, 7, "Concepto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueW, 7, "Importe", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(labelW, 7, "Pagos anteriores", "1", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 7, "$"+data.PagosPrevios.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 7, "Este pago", "1", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 7, "$"+data.Monto.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelW, 8, "Saldo pendiente", "1", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 8, fmt.Sprintf("$%s %s", data.Saldo.StringFixed(2), data.Moneda), "1", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Este recibo no es un comprobante fiscal.", "", 1, "C", false, 0, "")

	return pdf
}
