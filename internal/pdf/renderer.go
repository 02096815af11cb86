// Package pdf converts declarative docgen trees into A4 PDF files. It is the
// only stage of the document pipeline that can fail.
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/JeanBsh/LocaTrack/internal/docgen"
)

const (
	pageMargin   = 40.0
	labelWidth   = 150.0
	columnGap    = 24.0
	lineFactor   = 1.45
	minLine      = 12.0
	fontFamily   = "Helvetica"
	defaultAlign = "L"
)

type renderer struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	width  float64 // content width between margins
	images int
}

// Render lays out a document and returns the finished PDF bytes.
func Render(doc *docgen.Document) ([]byte, error) {
	f := gofpdf.New("P", "pt", "A4", "")
	f.SetMargins(pageMargin, pageMargin, pageMargin)
	f.SetAutoPageBreak(true, pageMargin+24)

	r := &renderer{
		pdf: f,
		tr:  f.UnicodeTranslatorFromDescriptor(""),
	}
	w, _ := f.GetPageSize()
	r.width = w - 2*pageMargin

	if doc.Footer != "" {
		footer := doc.Footer
		f.SetFooterFunc(func() {
			f.SetY(-32)
			f.SetFont(fontFamily, "I", 8)
			f.SetTextColor(148, 163, 184)
			f.CellFormat(0, 10, r.tr(footer), "", 0, "C", false, 0, "")
			f.SetTextColor(30, 41, 59)
		})
	}

	f.AddPage()
	f.SetTextColor(30, 41, 59)

	r.renderNodes(doc.Nodes, pageMargin, r.width)

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *renderer) renderNodes(nodes []docgen.Node, x, width float64) {
	for _, n := range nodes {
		r.pdf.SetX(x)
		switch node := n.(type) {
		case docgen.Title:
			r.title(node, width)
		case docgen.Heading:
			r.heading(node, x, width)
		case docgen.Text:
			r.text(node, x, width)
		case docgen.Row:
			r.row(node, x, width)
		case docgen.TableRow:
			r.tableRow(node, x, width)
		case docgen.Box:
			r.box(node, x, width)
		case docgen.Image:
			r.image(node, x, width)
		case docgen.Columns:
			r.columns(node, x, width)
		case docgen.Spacer:
			r.pdf.Ln(node.Height)
		case docgen.Rule:
			y := r.pdf.GetY()
			r.pdf.SetDrawColor(226, 232, 240)
			r.pdf.Line(x, y, x+width, y)
			r.pdf.Ln(6)
		}
	}
}

func (r *renderer) title(t docgen.Title, width float64) {
	r.pdf.SetFont(fontFamily, "B", 20)
	r.pdf.SetTextColor(37, 99, 235)
	r.pdf.CellFormat(width, 24, r.tr(t.Content), "", 1, "C", false, 0, "")
	r.pdf.SetTextColor(30, 41, 59)
	if t.Subtitle != "" {
		r.pdf.SetFont(fontFamily, "", 10)
		r.pdf.SetTextColor(100, 116, 139)
		r.pdf.CellFormat(width, 14, r.tr(t.Subtitle), "", 1, "C", false, 0, "")
		r.pdf.SetTextColor(30, 41, 59)
	}
	y := r.pdf.GetY() + 4
	r.pdf.SetDrawColor(37, 99, 235)
	r.pdf.SetLineWidth(1.5)
	r.pdf.Line(pageMargin, y, pageMargin+r.width, y)
	r.pdf.SetLineWidth(0.2)
	r.pdf.SetY(y + 12)
}

func (r *renderer) heading(h docgen.Heading, x, width float64) {
	r.pdf.Ln(8)
	r.pdf.SetX(x)
	r.pdf.SetFont(fontFamily, "B", 12)
	r.pdf.SetFillColor(241, 245, 249)
	r.pdf.CellFormat(width, 18, " "+r.tr(h.Content), "", 1, "L", true, 0, "")
	r.pdf.Ln(5)
}

func (r *renderer) text(t docgen.Text, x, width float64) {
	style := ""
	if t.Style.Bold {
		style += "B"
	}
	if t.Style.Italic {
		style += "I"
	}
	size := t.Style.Size
	if size == 0 {
		size = 10
	}
	align := t.Style.Align
	if align == "" {
		align = defaultAlign
	}
	r.pdf.SetFont(fontFamily, style, size)
	r.pdf.SetX(x)
	r.pdf.MultiCell(width, lineHeight(size), r.tr(t.Content), "", align, false)
	if t.SpaceAfter > 0 {
		r.pdf.Ln(t.SpaceAfter)
	}
}

func (r *renderer) row(row docgen.Row, x, width float64) {
	r.pdf.SetFont(fontFamily, "B", 10)
	r.pdf.CellFormat(labelWidth, 14, r.tr(row.Label), "", 0, "L", false, 0, "")
	valueStyle := ""
	if row.BoldValue {
		valueStyle = "B"
	}
	r.pdf.SetFont(fontFamily, valueStyle, 10)
	r.pdf.MultiCell(width-labelWidth, 14, r.tr(row.Value), "", "L", false)
}

func (r *renderer) tableRow(row docgen.TableRow, x, width float64) {
	descW := width * 0.7
	amountW := width - descW

	style := ""
	fill := false
	switch {
	case row.Header:
		style = "B"
		fill = true
		r.pdf.SetFillColor(226, 232, 240)
	case row.Total:
		style = "B"
		fill = true
		r.pdf.SetFillColor(239, 246, 255)
	}

	r.pdf.SetFont(fontFamily, style, 10)
	r.pdf.CellFormat(descW, 20, " "+r.tr(row.Desc), "B", 0, "L", fill, 0, "")
	r.pdf.CellFormat(amountW, 20, r.tr(row.Amount)+" ", "B", 1, "R", fill, 0, "")
}

func (r *renderer) box(b docgen.Box, x, width float64) {
	top := r.pdf.GetY()
	r.pdf.SetY(top + 8)

	if b.Title != "" {
		r.pdf.SetX(x + 10)
		r.pdf.SetFont(fontFamily, "B", 9)
		r.pdf.SetTextColor(100, 116, 139)
		r.pdf.CellFormat(width-20, 12, r.tr(b.Title), "", 1, "L", false, 0, "")
		r.pdf.SetTextColor(30, 41, 59)
		r.pdf.Ln(2)
	}

	r.pdf.SetFont(fontFamily, "", 11)
	for _, line := range b.Lines {
		r.pdf.SetX(x + 10)
		r.pdf.MultiCell(width-20, 15, r.tr(line), "", "L", false)
	}

	bottom := r.pdf.GetY() + 8
	r.pdf.SetDrawColor(203, 213, 225)
	r.pdf.Rect(x, top, width, bottom-top, "D")
	r.pdf.SetY(bottom + 6)
}

func (r *renderer) image(img docgen.Image, x, width float64) {
	data, imageType, ok := decodeDataURI(img.DataURI)
	if !ok {
		slog.Warn("skipping image node with unsupported data URI")
		return
	}

	r.images++
	name := fmt.Sprintf("img%d", r.images)
	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if r.pdf.Err() {
		// A corrupt image must not sink the document.
		slog.Warn("skipping undecodable image", "error", r.pdf.Error())
		r.pdf.ClearError()
		return
	}

	ix := x
	switch img.Align {
	case "C":
		ix = x + (width-img.Width)/2
	case "R":
		ix = x + width - img.Width
	}

	y := r.pdf.GetY()
	r.pdf.ImageOptions(name, ix, y, img.Width, img.Height, false, opts, 0, "")
	r.pdf.SetY(y + img.Height + 4)
}

func (r *renderer) columns(c docgen.Columns, x, width float64) {
	colW := (width - columnGap) / 2
	top := r.pdf.GetY()

	r.renderNodes(c.Left, x, colW)
	leftBottom := r.pdf.GetY()

	r.pdf.SetY(top)
	r.renderNodes(c.Right, x+colW+columnGap, colW)
	rightBottom := r.pdf.GetY()

	if leftBottom > rightBottom {
		r.pdf.SetY(leftBottom)
	} else {
		r.pdf.SetY(rightBottom)
	}
}

func lineHeight(size float64) float64 {
	h := size * lineFactor
	if h < minLine {
		return minLine
	}
	return h
}

// decodeDataURI splits "data:image/png;base64,...." into raw bytes and the
// gofpdf image type token.
func decodeDataURI(uri string) ([]byte, string, bool) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, "", false
	}
	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, "", false
	}

	var imageType string
	switch strings.ToLower(rest[:sep]) {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg", "image/jpg":
		imageType = "JPG"
	case "image/gif":
		imageType = "GIF"
	default:
		return nil, "", false
	}

	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return nil, "", false
	}
	return data, imageType, true
}
