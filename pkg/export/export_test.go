package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"UE", "Intitulé", "Note"},
		Rows: []map[string]string{
			{"UE": "UE101", "Intitulé": "Algorithmique", "Note": "15.50"},
			{"UE": "UE102", "Intitulé": "Réseaux", "Note": "9"},
		},
	}
}

func TestCSVExporterUsesSemicolons(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, "UE;Intitulé;Note\nUE101;Algorithmique;15.50\nUE102;Réseaux;9\n", string(out))
}

func TestPDFExporterProducesDocument(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Relevé de notes")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXExporterWritesNumbers(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset(), "Relevé: Alice/Martin")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	assert.Equal(t, "Relevé AliceMartin", sheet)
	header, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Intitulé", header)
	grade, err := f.GetCellValue(sheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "15.5", grade)
}

func TestExportersRequireHeaders(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatPDF, FormatXLSX} {
		renderer, err := RendererFor(format)
		require.NoError(t, err)
		_, err = renderer.Render(Dataset{}, "")
		assert.Error(t, err, format)
	}
	_, err := RendererFor("docx")
	assert.Error(t, err)
}

func TestFormatContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "application/octet-stream", Format("docx").ContentType())
}
