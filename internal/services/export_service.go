package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"travelbuddies/internal/catalog"
	"travelbuddies/internal/domain/models"
	"travelbuddies/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ExportService renders an itinerary for printing, as HTML or PDF.
type ExportService struct {
	Catalog   *catalog.Catalog
	RequestID string
}

func (s ExportService) PrintableHTML(itineraryID string) ([]byte, error) {
	it, err := s.Catalog.ItineraryByID(itineraryID)
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "export", "print_html", "itinerary_id="+itineraryID)
	return RenderPrintableHTML(it)
}

func (s ExportService) PDF(itineraryID string) ([]byte, string, error) {
	it, err := s.Catalog.ItineraryByID(itineraryID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "export", "pdf", "itinerary_id="+itineraryID)
	return BuildItineraryPDF(it)
}

// The document must stand alone in a new window, so styles are inline and
// nothing is loaded from the network.
var printTemplate = template.Must(template.New("itinerary").Funcs(template.FuncMap{
	"section": func(heading string, items []string) listSection {
		return listSection{Heading: heading, Items: items}
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} - Itinerary</title>
<style>
  body { font-family: Arial, sans-serif; max-width: 800px; margin: 40px auto; padding: 20px; }
  h1 { color: #1a73e8; border-bottom: 3px solid #1a73e8; padding-bottom: 10px; }
  h2 { color: #333; margin-top: 20px; }
  .info { background: #f5f5f5; padding: 15px; border-radius: 8px; margin: 20px 0; }
  .day { margin: 20px 0; border-left: 4px solid #1a73e8; padding-left: 15px; }
  ul { line-height: 1.8; }
  @media print { body { margin: 20px; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="info">
  <p><strong>Duration:</strong> {{.Duration}}</p>
  <p><strong>Group Size:</strong> {{.GroupSize}}</p>
  <p><strong>Difficulty:</strong> {{.Difficulty}}</p>
</div>
{{- if .Schedule}}
<h2>Day-by-Day Schedule</h2>
{{- range .Schedule}}
<div class="day">
  <h3>Day {{.Day}}: {{.Title}}</h3>
  {{- if .Activities}}
  <ul>{{range .Activities}}<li>{{.}}</li>{{end}}</ul>
  {{- end}}
  <p><em>Meals: {{.Meals}} | Accommodation: {{.Accommodation}}</em></p>
</div>
{{- end}}
{{- end}}
{{- template "list" (section "Inclusions" .Inclusions)}}
{{- template "list" (section "Exclusions" .Exclusions)}}
{{- template "list" (section "Packing List" .PackingList)}}
<script>window.print();</script>
</body>
</html>
{{define "list"}}{{if .Items}}
<h2>{{.Heading}}</h2>
<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>{{end}}{{end}}`))

type listSection struct {
	Heading string
	Items   []string
}

// RenderPrintableHTML enumerates every day and every list item; empty lists
// are left out of the document.
func RenderPrintableHTML(it models.Itinerary) ([]byte, error) {
	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, it); err != nil {
		return nil, fmt.Errorf("render itinerary %s: %w", it.ID, err)
	}
	return buf.Bytes(), nil
}

// BuildItineraryPDF lays out the same content as the printable page.
func BuildItineraryPDF(it models.Itinerary) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		return tr(strings.ReplaceAll(s, "₹", "Rs."))
	}

	pdf.SetTitle(it.Title+" - Itinerary", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(26, 115, 232)
	pdf.MultiCell(0, 9, text(it.Title), "", "", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		"Duration   : " + utils.Fallback(it.Duration, "-"),
		"Group Size : " + utils.Fallback(it.GroupSize, "-"),
		"Difficulty : " + utils.Fallback(it.Difficulty, "-"),
	} {
		pdf.Cell(0, 6, text(line))
		pdf.Ln(6)
	}

	if len(it.Schedule) > 0 {
		pdfHeading(pdf, text("Day-by-Day Schedule"))
		for _, day := range it.Schedule {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(0, 7, text(fmt.Sprintf("Day %d: %s", day.Day, day.Title)), "", "", false)
			pdf.SetFont("Helvetica", "", 11)
			for _, a := range day.Activities {
				pdf.MultiCell(0, 6, text("  - "+a), "", "", false)
			}
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 6, text(fmt.Sprintf("Meals: %s | Accommodation: %s", day.Meals, day.Accommodation)), "", "", false)
			pdf.Ln(2)
		}
	}

	for _, sec := range []listSection{
		{"Inclusions", it.Inclusions},
		{"Exclusions", it.Exclusions},
		{"Packing List", it.PackingList},
	} {
		if len(sec.Items) == 0 {
			continue
		}
		pdfHeading(pdf, text(sec.Heading))
		pdf.SetFont("Helvetica", "", 11)
		for _, item := range sec.Items {
			pdf.MultiCell(0, 6, text("  - "+item), "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ITINERARY_%s.pdf", utils.SafeFilenamePart(it.ID))
	return buf.Bytes(), filename, nil
}

func pdfHeading(pdf *gofpdf.Fpdf, s string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, s)
	pdf.Ln(9)
}
