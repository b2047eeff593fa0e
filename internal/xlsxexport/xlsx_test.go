package xlsxexport_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"birmerge/internal/csvexport"
	"birmerge/internal/domain"
	"birmerge/internal/xlsxexport"
)

func TestReport_Write(t *testing.T) {
	r := xlsxexport.NewReport()
	path := filepath.Join(t.TempDir(), "run"+r.Suffix())

	segments := []domain.SegmentSummary{
		{Index: 0, BDB: "XYZ123", QualityScore: "87", Type: []string{"FINGER"}, Subtype: []string{"A", "B"}, FormatType: "WSQ"},
		{Index: 1, BDB: "second"},
	}
	require.NoError(t, r.Write(path, segments))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{xlsxexport.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(xlsxexport.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvexport.Columns, rows[0])
	assert.Equal(t, []string{"0", "XYZ123", "87", "FINGER", "A B", "", "WSQ"}, rows[1])
	assert.Equal(t, "second", rows[2][1])
}

func TestReport_Write_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, xlsxexport.NewReport().Write(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsxexport.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
