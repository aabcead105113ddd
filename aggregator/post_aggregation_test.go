package aggregator

import (
	"testing"

	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/logger"
	"github.com/rulego/dataquery/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregatedTable() *dataset.Table {
	return dataset.MustNewTable(
		[]dataset.Column{
			{Name: "Region", Kind: dataset.KindText},
			{Name: "Profit_sum", Kind: dataset.KindNumeric},
			{Name: "Sales_sum", Kind: dataset.KindNumeric},
		},
		[]dataset.Row{
			{"Region": "West", "Profit_sum": 30.0, "Sales_sum": 200.0},
			{"Region": "East", "Profit_sum": 5.0, "Sales_sum": 0.0},
			{"Region": "North", "Profit_sum": nil, "Sales_sum": 10.0},
		},
	)
}

func TestNewPostAggregationExpression(t *testing.T) {
	pae, err := NewPostAggregationExpression(types.MeasureDefinition{Name: "Margin", Formula: "SUM(Profit) / sum(Sales)"})
	require.NoError(t, err)
	assert.Equal(t, "Margin", pae.OutputField)
	assert.Equal(t, "Profit_sum / Sales_sum", pae.Expression.String())
	assert.Equal(t, []string{"Profit_sum", "Sales_sum"}, pae.RequiredAggFields)
	assert.Equal(t, "SUM(Profit) / sum(Sales)", pae.OriginalExpr)

	_, err = NewPostAggregationExpression(types.MeasureDefinition{Name: "Bad", Formula: "SUM(Profit"})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeMalformedMeasureFormula))
}

// TestPostAggregationProcessor 测试聚合度量计算
func TestPostAggregationProcessor(t *testing.T) {
	p := NewPostAggregationProcessor(logger.NewDiscardLogger())
	source := aggregatedTable()
	out, soft, err := p.Evaluate(source, []types.MeasureDefinition{
		{Name: "Margin", Formula: "SUM(Profit) / SUM(Sales)"},
		{Name: "Double", Formula: "SUM(Sales) * 2"},
	})
	require.NoError(t, err)
	assert.Empty(t, soft)

	margin := out.Values("Margin")
	assert.Equal(t, 0.15, margin[0])
	// 除零得到 +Inf，缺失值传播为 null
	assert.Equal(t, dataset.Float(5.0/zero()), margin[1])
	assert.Nil(t, margin[2])
	assert.Equal(t, []interface{}{400.0, 0.0, 20.0}, out.Values("Double"))

	// 输入不被修改
	assert.False(t, source.HasColumn("Margin"))
}

func zero() float64 { return 0 }

func TestPostAggregationProcessor_MissingDependency(t *testing.T) {
	p := NewPostAggregationProcessor(logger.NewDiscardLogger())
	_, _, err := p.Evaluate(aggregatedTable(), []types.MeasureDefinition{
		{Name: "AvgMargin", Formula: "AVG(Profit) / SUM(Sales)"},
	})
	require.Error(t, err)
	assert.True(t, types.IsErrorType(err, types.ErrorTypeMissingAggregationDependency))
	assert.Contains(t, err.Error(), "Profit_avg")
}

func TestPostAggregationProcessor_SoftErrors(t *testing.T) {
	tests := []struct {
		name    string
		measure types.MeasureDefinition
	}{
		{"名称冲突", types.MeasureDefinition{Name: "Sales_sum", Formula: "SUM(Sales) + 1"}},
		{"未知字段", types.MeasureDefinition{Name: "Ratio", Formula: "SUM(Sales) / Discount"}},
		{"文本列参与运算", types.MeasureDefinition{Name: "Weird", Formula: "SUM(Sales) + Region"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPostAggregationProcessor(logger.NewDiscardLogger())
			out, soft, err := p.Evaluate(aggregatedTable(), []types.MeasureDefinition{
				tt.measure,
				{Name: "Margin", Formula: "SUM(Profit) / SUM(Sales)"},
			})
			require.NoError(t, err)
			require.Len(t, soft, 1)
			assert.True(t, types.IsErrorType(soft[0], types.ErrorTypeAggregation))
			// 其他度量不受影响
			assert.True(t, out.HasColumn("Margin"))
			assert.Equal(t, aggregatedTable().ColumnNames(), out.ColumnNames()[:3])
		})
	}
}
