package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rulego/dataquery/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *types.QueryResult {
	return &types.QueryResult{
		Columns: []string{"Region", "Amount_sum"},
		Rows: []map[string]interface{}{
			{"Region": "East", "Amount_sum": 30.0},
			{"Region": "West, Inc", "Amount_sum": nil},
		},
		TotalRowCount: 2,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))
	assert.Equal(t, "Region,Amount_sum\nEast,30\n\"West, Inc\",\n", buf.String())
}

func TestWriteCSV_NoColumns(t *testing.T) {
	var buf bytes.Buffer
	result := &types.QueryResult{Rows: []map[string]interface{}{{"b": 1.0, "a": "x"}}}
	require.NoError(t, WriteCSV(&buf, result))
	assert.Equal(t, "a,b\nx,1\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2.0, decoded["total_rows"])
	assert.Len(t, decoded["data"], 2)
}

// TestPrintTable 测试表格打印
func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sampleResult())
	out := buf.String()
	assert.Contains(t, out, "Region")
	assert.Contains(t, out, "Amount_sum")
	assert.Contains(t, out, "West, Inc")
	assert.Contains(t, out, "null")
	assert.True(t, strings.HasSuffix(out, "(2 rows)\n"))

	buf.Reset()
	PrintTable(&buf, &types.QueryResult{})
	assert.Equal(t, "(0 rows)\n", buf.String())
}
