package document

import (
	"regexp"
	"strings"
	"time"

	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/shopspring/decimal"
)

// View holds the display-ready values of one work-order document
type View struct {
	WONumber           string
	Date               string
	VendorName         string
	VendorAddressLines []string
	VendorContact      string
	VendorGST          string
	SiteName           string
	ProjectDescription string
	WorkDescription    string

	CompanyName          string
	CompanyContactPerson string
	CompanyContactNumber string
	CompanyGST           string
	SignatoryName        string
	SignatoryDesignation string

	TotalAmount      string
	HasGST           bool
	SGSTPercent      string
	SGSTAmount       string
	CGSTPercent      string
	CGSTAmount       string
	GrossAmount      string
	HasRetention     bool
	RetentionPercent string
	RetentionAmount  string
	NetAmount        string

	PaymentTerms      string
	VendorBankName    string
	VendorBankAccount string
	VendorBankIFSC    string
}

const notAvailable = "N/A"

// NewView formats a work order and its company for display
func NewView(wo *domain.WorkOrderDetail) View {
	projectDescription := wo.ProjectDescription
	if strings.TrimSpace(projectDescription) == "" {
		projectDescription = wo.WorkDescription
	}

	companyName := wo.CompanyName
	if companyName == "" {
		companyName = "Company"
	}

	paymentTerms := wo.PaymentTerms
	if paymentTerms == "" {
		paymentTerms = "As per agreement"
	}

	var addressLines []string
	for _, line := range strings.Split(wo.VendorAddress, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			addressLines = append(addressLines, line)
		}
	}

	return View{
		WONumber:           wo.WONumber,
		Date:               FormatDate(wo.Date),
		VendorName:         wo.VendorName,
		VendorAddressLines: addressLines,
		VendorContact:      wo.VendorContact,
		VendorGST:          wo.VendorGST,
		SiteName:           wo.SiteName,
		ProjectDescription: projectDescription,
		WorkDescription:    wo.WorkDescription,

		CompanyName:          companyName,
		CompanyContactPerson: wo.CompanyContactPerson,
		CompanyContactNumber: wo.CompanyContactNumber,
		CompanyGST:           wo.CompanyGST,
		SignatoryName:        wo.CompanySignatoryName,
		SignatoryDesignation: wo.CompanySignatoryDesignation,

		TotalAmount:      FormatINR(wo.TotalAmount),
		HasGST:           wo.HasGST,
		SGSTPercent:      FormatPercent(wo.SGSTPercent),
		SGSTAmount:       FormatINR(wo.SGSTAmount),
		CGSTPercent:      FormatPercent(wo.CGSTPercent),
		CGSTAmount:       FormatINR(wo.CGSTAmount),
		GrossAmount:      FormatINR(wo.GrossAmount),
		HasRetention:     wo.RetentionPercent.IsPositive(),
		RetentionPercent: FormatPercent(wo.RetentionPercent),
		RetentionAmount:  FormatINR(wo.RetentionAmount),
		NetAmount:        FormatINR(wo.NetAmount),

		PaymentTerms:      paymentTerms,
		VendorBankName:    orNotAvailable(wo.VendorBankName),
		VendorBankAccount: orNotAvailable(wo.VendorBankAccount),
		VendorBankIFSC:    orNotAvailable(wo.VendorBankIFSC),
	}
}

// FormatINR renders an amount as "Rs. 1,23,456.00": rounded to paise, with
// the last three integer digits grouped and pairs above them.
func FormatINR(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var grouped string
	if len(intPart) <= 3 {
		grouped = intPart
	} else {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var pairs []string
		for len(head) > 2 {
			pairs = append([]string{head[len(head)-2:]}, pairs...)
			head = head[:len(head)-2]
		}
		pairs = append([]string{head}, pairs...)
		grouped = strings.Join(pairs, ",") + "," + tail
	}
	return "Rs. " + sign + grouped + "." + frac
}

// FormatDate renders a date as DD/MM/YYYY
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatPercent renders a percentage without trailing zeros
func FormatPercent(p decimal.Decimal) string {
	return p.String()
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Filename is the attachment name for a work order's PDF
func Filename(woNumber string) string {
	return "WorkOrder_" + unsafeFilenameChars.ReplaceAllString(woNumber, "_") + ".pdf"
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
