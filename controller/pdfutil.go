//go:build !cgo
// +build !cgo

package controller

import (
	"fmt"
)

func renderPDFPageToPNG(pdfData []byte, dpi float64) ([]byte, error) {
	return nil, fmt.Errorf("PDF rendering not supported (built without cgo/fitz)")
}
