package service

import "context"

// PDFRenderer prints a standalone HTML document to PDF.
type PDFRenderer interface {
	PrintPDF(ctx context.Context, html []byte) ([]byte, error)
}
