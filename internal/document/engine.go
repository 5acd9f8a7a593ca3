package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"
)

// Engine names
const (
	EngineGoFPDF = "gofpdf"
	EngineRemote = "remote"
)

// Source is what an engine turns into PDF bytes
type Source struct {
	View View
	HTML []byte
	CSS  string
}

// Engine produces PDF bytes for a work order document
type Engine interface {
	Name() string
	Render(ctx context.Context, src *Source) ([]byte, error)
}

// RemoteEngine posts the HTML and stylesheet to an HTML-to-PDF service
type RemoteEngine struct {
	url    string
	client *http.Client
}

// NewRemoteEngine creates an engine posting to url
func NewRemoteEngine(url string, client *http.Client) *RemoteEngine {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteEngine{url: url, client: client}
}

func (e *RemoteEngine) Name() string { return EngineRemote }

type remoteRequest struct {
	Source struct {
		HTML string `json:"html"`
	} `json:"source"`
	Styles []remoteStyle `json:"styles"`
}

type remoteStyle struct {
	Content string `json:"content"`
}

func (e *RemoteEngine) Render(ctx context.Context, src *Source) ([]byte, error) {
	var body remoteRequest
	body.Source.HTML = string(src.HTML)
	body.Styles = []remoteStyle{{Content: src.CSS}}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("pdf service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return io.ReadAll(resp.Body)
}

// GoFPDFEngine draws the document layout in-process
type GoFPDFEngine struct{}

func (GoFPDFEngine) Name() string { return EngineGoFPDF }

const (
	pageWidth  = 180.0 // A4 less 15mm margins
	halfWidth  = 88.0
	columnGap  = pageWidth - 2*halfWidth
	lineHeight = 5.0
)

func (GoFPDFEngine) Render(ctx context.Context, src *Source) ([]byte, error) {
	v := src.View

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(pageWidth, 9, "WORK ORDER", "B", 1, "C", false, 0, "")
	pdf.Ln(4)

	// vendor and work-order blocks side by side
	var left, right []string
	left = append(left, "To,", v.VendorName)
	left = append(left, v.VendorAddressLines...)
	if v.VendorContact != "" {
		left = append(left, "Contact: "+v.VendorContact)
	}
	if v.VendorGST != "" {
		left = append(left, "GST No.: "+v.VendorGST)
	}
	right = append(right, "W.O. "+v.WONumber, "Date: "+v.Date, "Site: "+v.SiteName)
	if v.CompanyContactPerson != "" {
		right = append(right, "Contact Person: "+v.CompanyContactPerson)
	}
	if v.CompanyContactNumber != "" {
		right = append(right, "Contact No.: "+v.CompanyContactNumber)
	}
	if v.CompanyGST != "" {
		right = append(right, "GST No.: "+v.CompanyGST)
	}

	pdf.SetFont("Arial", "", 10)
	top := pdf.GetY()
	rows := len(left)
	if len(right) > rows {
		rows = len(right)
	}
	height := float64(rows)*lineHeight + 4
	pdf.Rect(15, top, halfWidth, height, "D")
	pdf.Rect(15+halfWidth+columnGap, top, halfWidth, height, "D")
	for i, line := range left {
		pdf.SetXY(17, top+2+float64(i)*lineHeight)
		pdf.CellFormat(halfWidth-4, lineHeight, tr(line), "", 0, "L", false, 0, "")
	}
	for i, line := range right {
		pdf.SetXY(17+halfWidth+columnGap, top+2+float64(i)*lineHeight)
		pdf.CellFormat(halfWidth-4, lineHeight, tr(line), "", 0, "L", false, 0, "")
	}
	pdf.SetXY(15, top+height+4)

	if v.ProjectDescription != "" {
		pdf.SetFillColor(249, 249, 249)
		pdf.MultiCell(pageWidth, lineHeight, tr(v.ProjectDescription), "1", "L", true)
		pdf.Ln(3)
	}

	// services table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(20, 7, "S. No.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(pageWidth-60, 7, "DESCRIPTION OF SERVICES", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "AMOUNT", "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(20, 7, "1", "1", 0, "C", false, 0, "")
	pdf.CellFormat(pageWidth-60, 7, tr(truncate(v.WorkDescription, 90)), "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, v.TotalAmount, "1", 1, "R", false, 0, "")
	pdf.Ln(3)

	// financial summary
	summary := [][2]string{{"Total Amount:", v.TotalAmount}}
	if v.HasGST {
		summary = append(summary,
			[2]string{"SGST " + v.SGSTPercent + "%:", v.SGSTAmount},
			[2]string{"CGST " + v.CGSTPercent + "%:", v.CGSTAmount},
		)
	}
	summary = append(summary, [2]string{"Gross Amount:", v.GrossAmount})
	if v.HasRetention {
		summary = append(summary, [2]string{"Retention " + v.RetentionPercent + "%:", "- " + v.RetentionAmount})
	}
	summary = append(summary, [2]string{"Net Amount:", v.NetAmount})
	for _, row := range summary {
		style := ""
		if row[0] == "Gross Amount:" || row[0] == "Net Amount:" {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(pageWidth-50, 6, row[0], "L", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, row[1], "R", 1, "R", false, 0, "")
	}
	pdf.CellFormat(pageWidth, 0, "", "T", 1, "", false, 0, "")
	pdf.Ln(4)

	// terms
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(pageWidth, 6, tr("TERMS & CONDITIONS:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	terms := []string{
		"1. Payment terms: " + v.PaymentTerms,
		"2. Tax invoice with all supporting documents or report is required to submit after completion of service",
	}
	if v.HasRetention {
		terms = append(terms, "3. Retention: "+v.RetentionPercent+"% ("+v.RetentionAmount+") will be deducted from gross amount")
	}
	for _, t := range terms {
		pdf.MultiCell(pageWidth, lineHeight, tr(t), "", "L", false)
	}
	pdf.Ln(3)

	// bank details
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(pageWidth, 6, "BANK DETAILS:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(pageWidth, lineHeight, tr("Name: "+v.VendorBankName), "", 1, "L", false, 0, "")
	pdf.CellFormat(pageWidth, lineHeight, tr("Acc. No: "+v.VendorBankAccount), "", 1, "L", false, 0, "")
	pdf.CellFormat(pageWidth, lineHeight, tr("IFSC: "+v.VendorBankIFSC), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// signatures
	top = pdf.GetY()
	pdf.Rect(15, top, halfWidth, 32, "D")
	pdf.Rect(15+halfWidth+columnGap, top, halfWidth, 32, "D")
	pdf.SetFont("Arial", "B", 9)
	pdf.SetXY(15, top+2)
	pdf.CellFormat(halfWidth, lineHeight, "Accepted Work Order", "", 0, "C", false, 0, "")
	pdf.SetXY(15+halfWidth+columnGap, top+2)
	pdf.CellFormat(halfWidth, lineHeight, tr("For "+v.CompanyName), "", 0, "C", false, 0, "")
	pdf.SetXY(15, top+20)
	pdf.CellFormat(halfWidth, lineHeight, "Signature of Contractor", "", 0, "C", false, 0, "")
	pdf.SetXY(15+halfWidth+columnGap, top+20)
	pdf.CellFormat(halfWidth, lineHeight, "Authorized Signatory", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	if v.SignatoryName != "" {
		pdf.SetX(15 + halfWidth + columnGap)
		pdf.CellFormat(halfWidth, 4, tr(v.SignatoryName), "", 1, "C", false, 0, "")
	}
	if v.SignatoryDesignation != "" {
		pdf.SetFont("Arial", "I", 8)
		pdf.SetX(15 + halfWidth + columnGap)
		pdf.CellFormat(halfWidth, 4, tr(v.SignatoryDesignation), "", 1, "C", false, 0, "")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
