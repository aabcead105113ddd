package aggregator

import (
	"math"
	"strings"
	"testing"

	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numericTable(values ...interface{}) *dataset.Table {
	rows := make([]dataset.Row, len(values))
	for i, v := range values {
		rows[i] = dataset.Row{"V": v, "Label": "x"}
	}
	return dataset.MustNewTable([]dataset.Column{
		{Name: "V", Kind: dataset.KindNumeric},
		{Name: "Label", Kind: dataset.KindText},
	}, rows)
}

// TestBin 测试直方图分箱
func TestBin(t *testing.T) {
	tests := []struct {
		name   string
		values []interface{}
		bins   int
		labels []string
		counts []interface{}
	}{
		{
			name:   "等宽分箱，最后一个区间闭合",
			values: []interface{}{10.0, 15.0, 20.0, nil, 100.0},
			bins:   9,
			labels: []string{
				"[10.0, 20.0)", "[20.0, 30.0)", "[30.0, 40.0)", "[40.0, 50.0)", "[50.0, 60.0)",
				"[60.0, 70.0)", "[70.0, 80.0)", "[80.0, 90.0)", "[90.0, 100.0]",
			},
			counts: []interface{}{2.0, 1.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 1.0},
		},
		{
			name:   "所有值相同",
			values: []interface{}{5.0, 5.0},
			bins:   2,
			labels: []string{"[4.5, 5.0)", "[5.0, 5.5]"},
			counts: []interface{}{0.0, 2.0},
		},
		{
			name:   "非整除边界",
			values: []interface{}{0.0, 1.0},
			bins:   3,
			labels: []string{"[0.0, 0.3333)", "[0.3333, 0.6667)", "[0.6667, 1.0]"},
			counts: []interface{}{1.0, 0.0, 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Bin(numericTable(tt.values...), "V", tt.bins)
			require.NoError(t, err)
			assert.Equal(t, []string{BinColumn, CountColumn}, out.ColumnNames())
			labels := make([]string, out.Len())
			for i, v := range out.Values(BinColumn) {
				labels[i] = v.(string)
			}
			assert.Equal(t, tt.labels, labels)
			assert.Equal(t, tt.counts, out.Values(CountColumn))
		})
	}
}

func TestBin_DefaultBins(t *testing.T) {
	out, err := Bin(numericTable(1.0, 2.0, 3.0), "V", 0)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultHistogramBins, out.Len())

	var total float64
	for _, c := range out.Values(CountColumn) {
		total += c.(float64)
	}
	assert.Equal(t, 3.0, total)
}

func TestBin_Empty(t *testing.T) {
	out, err := Bin(numericTable(nil, nil), "V", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
	assert.Equal(t, []string{BinColumn, CountColumn}, out.ColumnNames())
}

// TestBin_InfiniteValues 无穷值不参与分箱
func TestBin_InfiniteValues(t *testing.T) {
	out, err := Bin(numericTable(1.0, math.Inf(1), 3.0, math.Inf(-1)), "V", 2)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"[1.0, 2.0)", "[2.0, 3.0]"}, out.Values(BinColumn))
	assert.Equal(t, []interface{}{1.0, 1.0}, out.Values(CountColumn))

	out, err = Bin(numericTable(math.Inf(1), nil), "V", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestBin_NarrowRange(t *testing.T) {
	out, err := Bin(numericTable(0.1, 0.1000000000000001), "V", 10)
	require.NoError(t, err)
	require.Equal(t, 10, out.Len())

	counts := out.Values(CountColumn)
	assert.Equal(t, 1.0, counts[0])
	assert.Equal(t, 1.0, counts[9])

	labels := make(map[string]bool)
	for _, v := range out.Values(BinColumn) {
		labels[v.(string)] = true
	}
	assert.Len(t, labels, 10, "each bin has its own label")
	assert.True(t, strings.HasPrefix(out.Value(0, BinColumn).(string), "[0.1, "))
	assert.True(t, strings.HasSuffix(out.Value(9, BinColumn).(string), "]"))
}

func TestBin_Errors(t *testing.T) {
	_, err := Bin(numericTable(1.0), "Missing", 5)
	assert.True(t, types.IsErrorType(err, types.ErrorTypeUnknownColumn))

	_, err = Bin(numericTable(1.0), "Label", 5)
	assert.True(t, types.IsErrorType(err, types.ErrorTypeAggregation))
}
