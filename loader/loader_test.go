package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesCSV = `Region,Amount,Active,OrderDate,Note
East,10,true,2024-01-15,first
East,20,false,2024-02-01,
West,5.5,TRUE,2024-03-10,third
,,,,
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadCSV 测试 CSV 加载与类型推断
func TestLoadCSV(t *testing.T) {
	table, err := Load(writeFile(t, "sales.csv", salesCSV))
	require.NoError(t, err)
	assert.Equal(t, []string{"Region", "Amount", "Active", "OrderDate", "Note"}, table.ColumnNames())
	assert.Equal(t, 4, table.Len())

	kinds := map[string]dataset.Kind{}
	for _, c := range table.Columns() {
		kinds[c.Name] = c.Kind
	}
	assert.Equal(t, map[string]dataset.Kind{
		"Region":    dataset.KindText,
		"Amount":    dataset.KindNumeric,
		"Active":    dataset.KindBoolean,
		"OrderDate": dataset.KindTemporal,
		"Note":      dataset.KindText,
	}, kinds)

	assert.Equal(t, []interface{}{10.0, 20.0, 5.5, nil}, table.Values("Amount"))
	assert.Equal(t, []interface{}{true, false, true, nil}, table.Values("Active"))
	assert.Equal(t, []interface{}{"first", nil, "third", nil}, table.Values("Note"))
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), table.Value(0, "OrderDate"))
}

func TestLoadCSV_SampleFallback(t *testing.T) {
	content := "Code\n1\n2\nA3\n"
	table, err := Load(writeFile(t, "codes.csv", content), WithKindSampleSize(2))
	require.NoError(t, err)
	col, _ := table.Column("Code")
	// 样本推断为数值，后续值不符时回退为文本
	assert.Equal(t, dataset.KindText, col.Kind)
	assert.Equal(t, []interface{}{"1", "2", "A3"}, table.Values("Code"))
}

func TestLoadCSV_ShortRowsAndBOM(t *testing.T) {
	content := "\ufeffa,b,c\n1,2\n3,4,5\n"
	table, err := Load(writeFile(t, "short.csv", content))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, table.ColumnNames())
	assert.Equal(t, []interface{}{nil, 5.0}, table.Values("c"))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		opts    []Option
		errType types.ErrorType
	}{
		{"文件不存在", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") }, nil, types.ErrorTypeLoad},
		{"不支持的格式", func(t *testing.T) string { return writeFile(t, "data.xlsx", "x") }, nil, types.ErrorTypeLoad},
		{"空文件", func(t *testing.T) string { return writeFile(t, "empty.csv", "") }, nil, types.ErrorTypeLoad},
		{"重复列名", func(t *testing.T) string { return writeFile(t, "dup.csv", "a,a\n1,2\n") }, nil, types.ErrorTypeLoad},
		{"字段过多", func(t *testing.T) string { return writeFile(t, "wide.csv", "a\n1,2\n") }, nil, types.ErrorTypeLoad},
		{"文件过大", func(t *testing.T) string { return writeFile(t, "big.csv", salesCSV) }, []Option{WithMaxFileSize(10)}, types.ErrorTypeFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t), tt.opts...)
			require.Error(t, err)
			assert.True(t, types.IsErrorType(err, tt.errType), err.Error())
		})
	}
}

func TestPreview(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,value\n")
	for i := 0; i < 50; i++ {
		b.WriteString("1,2\n")
	}
	path := writeFile(t, "many.csv", b.String())

	table, err := Preview(path, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())

	table, err = Preview(path, 0, WithConfig(types.LoaderConfig{PreviewRows: 7}))
	require.NoError(t, err)
	assert.Equal(t, 7, table.Len())
}

type parquetRow struct {
	Name   string   `parquet:"name"`
	Score  float64  `parquet:"score"`
	Count  int64    `parquet:"count"`
	Active bool     `parquet:"active"`
	Bonus  *float64 `parquet:"bonus,optional"`
}

func writeParquet(t *testing.T, rows []parquetRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	writer := parquet.NewGenericWriter[parquetRow](f)
	_, err = writer.Write(rows)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return path
}

func TestLoadParquet(t *testing.T) {
	bonus := 1.5
	path := writeParquet(t, []parquetRow{
		{Name: "a", Score: 1.25, Count: 3, Active: true, Bonus: &bonus},
		{Name: "b", Score: 2.5, Count: 4, Active: false},
	})

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "score", "count", "active", "bonus"}, table.ColumnNames())
	assert.Equal(t, 2, table.Len())

	kinds := map[string]dataset.Kind{}
	for _, c := range table.Columns() {
		kinds[c.Name] = c.Kind
	}
	assert.Equal(t, dataset.KindText, kinds["name"])
	assert.Equal(t, dataset.KindNumeric, kinds["score"])
	assert.Equal(t, dataset.KindNumeric, kinds["count"])
	assert.Equal(t, dataset.KindBoolean, kinds["active"])
	assert.Equal(t, dataset.KindNumeric, kinds["bonus"])

	assert.Equal(t, []interface{}{3.0, 4.0}, table.Values("count"))
	assert.Equal(t, []interface{}{1.5, nil}, table.Values("bonus"))

	preview, err := Preview(path, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, preview.Len())
}

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat("x/Y.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	f, err = DetectFormat("y.parquet")
	require.NoError(t, err)
	assert.Equal(t, FormatParquet, f)
	_, err = DetectFormat("z.json")
	assert.Error(t, err)
}
