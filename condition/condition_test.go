package condition

import (
	"testing"
	"time"

	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterTable() *dataset.Table {
	day := func(s string) time.Time {
		tm, _ := time.Parse("2006-01-02", s)
		return tm
	}
	return dataset.MustNewTable(
		[]dataset.Column{
			{Name: "Region", Kind: dataset.KindText},
			{Name: "Amount", Kind: dataset.KindNumeric},
			{Name: "Date", Kind: dataset.KindTemporal},
			{Name: "Active", Kind: dataset.KindBoolean},
		},
		[]dataset.Row{
			{"Region": "East", "Amount": 10.0, "Date": day("2024-01-01"), "Active": true},
			{"Region": "West", "Amount": 20.0, "Date": day("2024-02-01"), "Active": false},
			{"Region": "East", "Amount": nil, "Date": day("2024-03-01"), "Active": true},
			{"Region": nil, "Amount": 40.0, "Date": nil, "Active": nil},
			{"Region": "North", "Amount": 50.0, "Date": day("2024-05-01"), "Active": false},
		},
	)
}

func regions(t *dataset.Table) []interface{} {
	return t.Values("Amount")
}

// TestApply 测试各个运算符
func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		filters []types.FilterCondition
		amounts []interface{}
	}{
		{
			name:    "无过滤条件",
			filters: nil,
			amounts: []interface{}{10.0, 20.0, nil, 40.0, 50.0},
		},
		{
			name:    "eq 文本",
			filters: []types.FilterCondition{{Column: "Region", Operator: "eq", Value: "East"}},
			amounts: []interface{}{10.0, nil},
		},
		{
			name:    "ne 包含缺失值",
			filters: []types.FilterCondition{{Column: "Region", Operator: "ne", Value: "East"}},
			amounts: []interface{}{20.0, 40.0, 50.0},
		},
		{
			name:    "gt 数字字符串被转换",
			filters: []types.FilterCondition{{Column: "Amount", Operator: "gt", Value: "20"}},
			amounts: []interface{}{40.0, 50.0},
		},
		{
			name:    "lte",
			filters: []types.FilterCondition{{Column: "Amount", Operator: "lte", Value: 20}},
			amounts: []interface{}{10.0, 20.0},
		},
		{
			name:    "gte 与 lt 组合",
			filters: []types.FilterCondition{{Column: "Amount", Operator: "gte", Value: 20}, {Column: "Amount", Operator: "lt", Value: 50}},
			amounts: []interface{}{20.0, 40.0},
		},
		{
			name:    "in 列表",
			filters: []types.FilterCondition{{Column: "Region", Operator: "in", Value: []string{"West", "North"}}},
			amounts: []interface{}{20.0, 50.0},
		},
		{
			name:    "between 闭区间",
			filters: []types.FilterCondition{{Column: "Amount", Operator: "between", Value: []interface{}{20, 40}}},
			amounts: []interface{}{20.0, 40.0},
		},
		{
			name:    "日期比较",
			filters: []types.FilterCondition{{Column: "Date", Operator: "gte", Value: "2024-02-01"}},
			amounts: []interface{}{20.0, nil, 50.0},
		},
		{
			name:    "布尔等值",
			filters: []types.FilterCondition{{Column: "Active", Operator: "eq", Value: "true"}},
			amounts: []interface{}{10.0, nil},
		},
		{
			name:    "运算符大小写不敏感",
			filters: []types.FilterCondition{{Column: "Region", Operator: "EQ", Value: "West"}},
			amounts: []interface{}{20.0},
		},
		{
			name:    "数值列与不可转换值相等比较",
			filters: []types.FilterCondition{{Column: "Amount", Operator: "eq", Value: "abc"}},
			amounts: []interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := filterTable()
			out, err := Apply(source, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.amounts, regions(out))
			assert.Equal(t, 5, source.Len(), "source must not change")
		})
	}
}

// TestApply_Errors 测试错误类型
func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name    string
		filter  types.FilterCondition
		errType types.ErrorType
	}{
		{"未知列", types.FilterCondition{Column: "Nope", Operator: "eq", Value: 1}, types.ErrorTypeUnknownColumn},
		{"未知运算符", types.FilterCondition{Column: "Amount", Operator: "like", Value: 1}, types.ErrorTypeUnsupportedOperator},
		{"between 只有一个值", types.FilterCondition{Column: "Amount", Operator: "between", Value: []interface{}{1}}, types.ErrorTypeInvalidFilterValue},
		{"between 非列表", types.FilterCondition{Column: "Amount", Operator: "between", Value: 5}, types.ErrorTypeInvalidFilterValue},
		{"in 非列表", types.FilterCondition{Column: "Region", Operator: "in", Value: "East"}, types.ErrorTypeInvalidFilterValue},
		{"文本列与数字比较大小", types.FilterCondition{Column: "Region", Operator: "gt", Value: 5}, types.ErrorTypeFilterEvaluation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(filterTable(), []types.FilterCondition{tt.filter})
			require.Error(t, err)
			assert.True(t, types.IsErrorType(err, tt.errType), "got %v", err)
			qe := err.(*types.QueryError)
			assert.Equal(t, tt.filter.Column, qe.Column)
		})
	}
}

func TestSelect_ValidatesBeforeEvaluating(t *testing.T) {
	_, err := Select(filterTable(), []types.FilterCondition{
		{Column: "Amount", Operator: "gt", Value: 1000},
		{Column: "Missing", Operator: "eq", Value: 1},
	})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeUnknownColumn))
}

func TestSelect_Bitmap(t *testing.T) {
	bm, err := Select(filterTable(), []types.FilterCondition{{Column: "Amount", Operator: "gte", Value: 20}})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3, 4}, bm.ToArray())
}

func TestNewExprCondition(t *testing.T) {
	c, err := NewExprCondition("v > arg")
	require.NoError(t, err)
	ok, err := c.Evaluate(map[string]interface{}{"v": 3.0, "arg": 2.0})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = c.Evaluate(map[string]interface{}{"v": "a", "arg": 2.0})
	assert.Error(t, err)

	_, err = NewExprCondition("v >")
	assert.Error(t, err)
}
