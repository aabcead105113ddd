package profiler

import (
	"fmt"
	"testing"
	"time"

	"github.com/rulego/dataquery/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileTable() *dataset.Table {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return dataset.MustNewTable(
		[]dataset.Column{
			{Name: "Amount", Kind: dataset.KindNumeric},
			{Name: "Region", Kind: dataset.KindText},
			{Name: "Day", Kind: dataset.KindTemporal},
			{Name: "Flag", Kind: dataset.KindBoolean},
		},
		[]dataset.Row{
			{"Amount": 1.0, "Region": "East", "Day": day, "Flag": true},
			{"Amount": 2.0, "Region": "West", "Day": day, "Flag": false},
			{"Amount": 3.0, "Region": "East", "Day": nil, "Flag": true},
			{"Amount": 4.0, "Region": nil, "Day": day, "Flag": nil},
			{"Amount": nil, "Region": "North", "Day": day, "Flag": true},
		},
	)
}

// TestProfile 测试数据集画像
func TestProfile(t *testing.T) {
	p := Profile(profileTable())
	assert.Equal(t, 5, p.TotalRows)
	assert.Equal(t, 4, p.TotalColumns)
	assert.Equal(t, []string{"Amount"}, p.NumericColumns)
	assert.Equal(t, []string{"Region", "Flag"}, p.CategoricalColumns)
	assert.Equal(t, []string{"Day"}, p.DateColumns)
	require.Len(t, p.Columns, 4)

	amount := p.Columns[0]
	assert.Equal(t, "numeric", amount.Kind)
	assert.Equal(t, 1, amount.MissingCount)
	assert.Equal(t, 20.0, amount.MissingPercentage)
	assert.Equal(t, 4, amount.UniqueCount)
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0, 4.0}, amount.SampleValues)
	assert.Equal(t, 2.5, *amount.Mean)
	assert.Equal(t, 2.5, *amount.Median)
	assert.InDelta(t, 1.2909944, *amount.Std, 1e-6)
	assert.Equal(t, 1.0, *amount.Min)
	assert.Equal(t, 4.0, *amount.Max)
	assert.Equal(t, 1.75, *amount.Q25)
	assert.Equal(t, 3.25, *amount.Q75)
	assert.Nil(t, amount.TopValues)

	region := p.Columns[1]
	assert.Equal(t, 3, region.UniqueCount)
	assert.Nil(t, region.Mean)
	assert.Equal(t, []ValueCount{{"East", 2}, {"West", 1}, {"North", 1}}, region.TopValues)

	day := p.Columns[2]
	assert.True(t, day.IsDate)
	assert.Equal(t, 1, day.UniqueCount)
}

func TestProfile_EdgeCases(t *testing.T) {
	empty := dataset.Empty(dataset.Column{Name: "x", Kind: dataset.KindNumeric})
	p := Profile(empty)
	require.Len(t, p.Columns, 1)
	assert.Equal(t, 0.0, p.Columns[0].MissingPercentage)
	assert.Nil(t, p.Columns[0].Mean)

	// 单值列：标准差为空
	one := dataset.MustNewTable([]dataset.Column{{Name: "x", Kind: dataset.KindNumeric}}, []dataset.Row{{"x": 7.0}})
	cp := Profile(one).Columns[0]
	assert.Nil(t, cp.Std)
	assert.Equal(t, 7.0, *cp.Q25)
}

func TestTopValuesCap(t *testing.T) {
	rows := make([]dataset.Row, 0, 30)
	for i := 0; i < 15; i++ {
		rows = append(rows, dataset.Row{"c": fmt.Sprintf("v%d", i)})
	}
	rows = append(rows, dataset.Row{"c": "v14"})
	table := dataset.MustNewTable([]dataset.Column{{Name: "c", Kind: dataset.KindText}}, rows)
	cp := Profile(table).Columns[0]
	require.Len(t, cp.TopValues, TopValuesSize)
	assert.Equal(t, ValueCount{Value: "v14", Count: 2}, cp.TopValues[0])
	assert.Equal(t, "v0", cp.TopValues[1].Value)
	assert.Len(t, cp.SampleValues, SampleSize)
}
