package finance

import (
	"fmt"
	"strings"
	"time"
)

const (
	siteCodeLength   = 5
	vendorCodeLength = 8
	siteFallback     = "SITE"
	vendorFallback   = "VENDOR"
)

// FormatWorkOrderNumber builds W.O.<DDMMYYYY>-<company>-<SITE>-<VENDOR>-<NN>.
// Site and vendor codes keep only ASCII letters, upper-cased and truncated to
// 5 and 8 characters; sequence is 1-based and padded to at least two digits.
func FormatWorkOrderNumber(companyCode, vendorName, siteName string, date time.Time, sequence int) string {
	return fmt.Sprintf("W.O.%s-%s-%s-%s-%02d",
		date.Format("02012006"),
		companyCode,
		letterCode(siteName, siteCodeLength, siteFallback),
		letterCode(vendorName, vendorCodeLength, vendorFallback),
		sequence,
	)
}

// FallbackWorkOrderNumber is used when no sequence could be obtained
func FallbackWorkOrderNumber(now time.Time) string {
	return fmt.Sprintf("WO-%d", now.UnixMilli())
}

func letterCode(s string, max int, fallback string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() == max {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return strings.ToUpper(b.String())
}
