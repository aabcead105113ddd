package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/rulego/dataquery/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenize 测试分词
func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		formula  string
		expected []string
		wantErr  bool
	}{
		{"减法不吞并负号", "a-5", []string{"a", "-", "5"}, false},
		{"小数与科学计数法", "1.5e3 * .5", []string{"1.5e3", "*", ".5"}, false},
		{"反引号标识符", "`Unit Price` * 2", []string{"Unit Price", "*", "2"}, false},
		{"函数调用", "SUM(Profit)", []string{"SUM", "(", "Profit", ")"}, false},
		{"中文列名", "利润 / 销售额", []string{"利润", "/", "销售额"}, false},
		{"带点标识符", "order.total + 1", []string{"order.total", "+", "1"}, false},
		{"空公式", "   ", nil, true},
		{"字符串字面量", "'abc'", nil, true},
		{"未闭合反引号", "`abc", nil, true},
		{"非法字符", "a % b", nil, true},
		{"非法数字", "12abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tokenize(tt.formula)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			values := make([]string, len(tokens))
			for i, tok := range tokens {
				values[i] = tok.Value
			}
			assert.Equal(t, tt.expected, values)
		})
	}
}

// TestCompile 测试编译与规范化输出
func TestCompile(t *testing.T) {
	tests := []struct {
		formula   string
		canonical string
		wantErr   bool
	}{
		{"a+b*c", "a + b * c", false},
		{"(a+b)*c", "(a + b) * c", false},
		{"a-(b-c)", "a - (b - c)", false},
		{"a/(b*c)", "a / (b * c)", false},
		{"-a + 3", "-a + 3", false},
		{"-(a+b)", "-(a + b)", false},
		{"+a", "a", false},
		{"sum(Profit)/SUM(Sales)", "sum(Profit) / SUM(Sales)", false},
		{"`Unit Price` * Qty", "`Unit Price` * Qty", false},
		{"a b", "", true},
		{"a +", "", true},
		{"(a + b", "", true},
		{"a + b)", "", true},
		{"foo(a)", "", true},
		{"SUM(a", "", true},
		{"a > b", "", true},
		{"a == 1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			e, err := Compile(tt.formula)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, e.String())
			assert.Equal(t, tt.formula, e.Source)
		})
	}
}

func TestExpressionFieldsAndCalls(t *testing.T) {
	e := MustCompile("Revenue - Cost + Revenue * 0.1")
	assert.Equal(t, []string{"Revenue", "Cost"}, e.Fields())
	assert.False(t, e.HasCalls())
	assert.Empty(t, e.Calls())

	agg := MustCompile("SUM(Profit) / mean(Sales) + count(a + b) - Bonus")
	assert.True(t, agg.HasCalls())
	assert.Equal(t, []string{"Bonus"}, agg.Fields())

	calls := agg.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, types.Sum, calls[0].Function)
	assert.Equal(t, types.Avg, calls[1].Function)
	assert.Equal(t, "mean", calls[1].Name)

	col, ok := calls[0].Column()
	assert.True(t, ok)
	assert.Equal(t, "Profit", col)

	_, ok = calls[2].Column()
	assert.False(t, ok, "count(a + b) is not a bare column")
}

// TestEvaluate 测试求值语义
func TestEvaluate(t *testing.T) {
	values := map[string]float64{"a": 10, "b": 4, "zero": 0}

	tests := []struct {
		formula string
		want    float64
	}{
		{"a + b * 2", 18},
		{"(a + b) * 2", 28},
		{"a - 5", 5},
		{"a-5", 5},
		{"-a + b", -6},
		{"a / b", 2.5},
		{"a / -b", -2.5},
		{"1e2 / a", 10},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			v, ok, err := MustCompile(tt.formula).Evaluate(MapResolver(values))
			require.NoError(t, err)
			assert.True(t, ok)
			assert.InDelta(t, tt.want, v, 1e-9)
		})
	}

	t.Run("除零", func(t *testing.T) {
		v, ok, err := MustCompile("a / zero").Evaluate(MapResolver(values))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, math.IsInf(v, 1))

		v, _, err = MustCompile("zero / zero").Evaluate(MapResolver(values))
		require.NoError(t, err)
		assert.True(t, math.IsNaN(v))
	})

	t.Run("缺失值传播", func(t *testing.T) {
		resolve := func(name string) (float64, bool, error) {
			if name == "m" {
				return 0, false, nil
			}
			return values[name], true, nil
		}
		_, ok, err := MustCompile("a + m * 2").Evaluate(resolve)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("未知字段", func(t *testing.T) {
		_, _, err := MustCompile("a + nope").Evaluate(MapResolver(values))
		assert.Error(t, err)
	})

	t.Run("聚合调用不能逐行求值", func(t *testing.T) {
		_, _, err := MustCompile("SUM(a)").Evaluate(MapResolver(values))
		assert.True(t, errors.Is(err, ErrAggregateCall))
	})
}

// TestRewriteAggregates 测试聚合调用改写
func TestRewriteAggregates(t *testing.T) {
	e := MustCompile("SUM(Profit) / sum(Sales) + MEAN(Profit) - SUM(Profit)")
	rewritten, refs, err := RewriteAggregates(e)
	require.NoError(t, err)
	assert.Equal(t, "Profit_sum / Sales_sum + Profit_avg - Profit_sum", rewritten.String())
	assert.Equal(t, []string{"Profit_sum", "Sales_sum", "Profit_avg"}, refs)
	assert.False(t, rewritten.HasCalls())

	// 原表达式不被修改
	assert.True(t, e.HasCalls())

	v, ok, err := rewritten.Evaluate(MapResolver(map[string]float64{
		"Profit_sum": 30, "Sales_sum": 200, "Profit_avg": 15,
	}))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 0.15, v, 1e-9)

	for _, bad := range []string{"SUM(a + b)", "SUM()", "SUM(a, b)", "SUM(2)", "SUM(AVG(a))"} {
		_, _, err := RewriteAggregates(MustCompile(bad))
		assert.Error(t, err, bad)
	}
}
