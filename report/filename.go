package report

import (
	"fmt"
	"time"
)

// DefaultExportPrefix is used when no filename prefix is given.
const DefaultExportPrefix = "invoice-report"

// ExportFilename builds a download filename of the form
// {prefix}-{YYYY-MM-DD}-{HH-MM-SS}.{ext}. Deterministic for a fixed
// clock; prefix and extension fall back to "invoice-report" and "csv".
func ExportFilename(prefix, extension string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultExportPrefix
	}
	if extension == "" {
		extension = "csv"
	}
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format("2006-01-02-15-04-05"), extension)
}
