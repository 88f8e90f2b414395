package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salespulse/internal/errors"
)

func TestMarshalXLSX(t *testing.T) {
	table := Table{
		Headers: []string{"Segment", "Current"},
		Rows: [][]string{
			{"Enterprise", "150.00"},
			{"Starter", "50.00"},
		},
	}

	data, err := MarshalXLSX(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Data"}, f.GetSheetList())

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Segment", "Current"}, rows[0])
	assert.Equal(t, []string{"Enterprise", "150.00"}, rows[1])
	assert.Equal(t, []string{"Starter", "50.00"}, rows[2])
}

func TestMarshalXLSXColumnWidths(t *testing.T) {
	table := Table{Headers: []string{"AB", "A header longer than the minimum"}}

	data, err := MarshalXLSX(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// Short headers get the fixed minimum; long headers get their length.
	short, err := f.GetColWidth("Data", "A")
	require.NoError(t, err)
	assert.InDelta(t, 10, short, 0.01)

	long, err := f.GetColWidth("Data", "B")
	require.NoError(t, err)
	assert.InDelta(t, float64(len(table.Headers[1])), long, 0.01)
}

func TestMarshalXLSXHeaderStyle(t *testing.T) {
	data, err := MarshalXLSX(Table{Headers: []string{"Segment"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	styleID, err := f.GetCellStyle("Data", "A1")
	require.NoError(t, err)
	assert.NotZero(t, styleID, "header cell should carry a style")
}

func TestMarshalXLSXRejectsRaggedRows(t *testing.T) {
	table := Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"1"}},
	}

	_, err := MarshalXLSX(table)
	require.Error(t, err)
	assert.True(t, errors.IsSerialization(err))
}

func TestSerializeDispatch(t *testing.T) {
	table := Table{Headers: []string{"A"}, Rows: [][]string{{"1"}}}

	csvData, err := Serialize(table, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "A\n1\n", string(csvData))

	xlsxData, err := Serialize(table, FormatXLSX)
	require.NoError(t, err)
	assert.NotEmpty(t, xlsxData)
	assert.NotEqual(t, csvData, xlsxData)

	_, err = Serialize(table, Format("pdf"))
	require.Error(t, err)
	assert.True(t, errors.IsSerialization(err))
}
