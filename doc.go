/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package dataquery 是一个面向平面文件数据集的即席分析查询引擎。

一次查询在内存中的表上依次执行：过滤、分组、聚合、计算度量、直方图分箱、
排序和分页，返回按行组织的结果表。

# 核心特性

• 结构化查询请求 - 过滤、分组、聚合、度量、排序、分页都以 JSON 描述
• 行级度量 - 跨列算术公式，如 "Sales - Cost"
• 聚合度量 - 聚合结果上的公式，如 "SUM(Profit) / SUM(Sales)"，自动补齐依赖的聚合
• 两列分组透视 - group_by 两列且只有一个聚合时输出透视表
• 直方图 - 等宽分箱，区间标签使用精确的十进制边界
• 文件加载 - CSV 与 Parquet，按列推断类型（数值、布尔、时间、文本）

# 入门示例

	engine := dataquery.New()

	req, err := types.ParseQueryRequest([]byte(`{
		"filters": [{"column": "Region", "operator": "ne", "value": "North"}],
		"group_by": ["Region"],
		"aggregations": [
			{"column": "Sales", "function": "sum"},
			{"column": "Margin"}
		],
		"measures": [{"name": "Margin", "formula": "SUM(Profit) / SUM(Sales)"}],
		"sort_by": [{"column": "Sales_sum", "order": "desc"}],
		"limit": 10
	}`))
	if err != nil {
		panic(err)
	}

	result, err := engine.ExecuteFile("sales.csv", req)
	if err != nil {
		panic(err)
	}
	output.PrintTable(os.Stdout, result)

# 执行流程

 1. 复制输入表，输入表不会被修改
 2. 执行转换（WithTransformers）
 3. 计算行级度量，失败的度量被跳过并记录日志
 4. 过滤
 5. 解析请求中引用的聚合度量的依赖
 6. 合并用户聚合与度量依赖，去重
 7. 直方图模式：对第一个聚合列分箱后直接返回
 8. 分组聚合
 9. 计算聚合度量
 10. 投影：分组列 + 请求的聚合列或度量
 11. 排序：稳定多键排序，缺失值排在最后
 12. 分页

聚合列命名为 "{列名}_{函数}"，如 Sales_avg；mean 与 stddev 分别规范为 avg 与 std。

# 日志

	engine := dataquery.New(dataquery.WithLogger(logger.NewZapLogger(logger.DEBUG, os.Stderr)))

每次查询分配一个 uuid，该查询的日志都带有这个标识。
*/
package dataquery
