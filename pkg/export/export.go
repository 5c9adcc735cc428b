// Package export renders tabular datasets as CSV, PDF or XLSX documents.
package export

import "fmt"

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Format identifies an output document type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Renderer turns a dataset into document bytes.
type Renderer interface {
	Render(data Dataset, title string) ([]byte, error)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// RendererFor returns the renderer of a format.
func RendererFor(f Format) (Renderer, error) {
	switch f {
	case FormatCSV:
		return NewCSVExporter(), nil
	case FormatPDF:
		return NewPDFExporter(), nil
	case FormatXLSX:
		return NewXLSXExporter(), nil
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

func record(data Dataset, row map[string]string) []string {
	values := make([]string, len(data.Headers))
	for i, header := range data.Headers {
		values[i] = row[header]
	}
	return values
}
