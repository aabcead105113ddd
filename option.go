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

package dataquery

import (
	"io"
	"os"

	"github.com/rulego/dataquery/loader"
	"github.com/rulego/dataquery/logger"
	"github.com/rulego/dataquery/measure"
	"github.com/rulego/dataquery/transform"
	"github.com/rulego/dataquery/types"
)

// Option 表示对查询引擎默认行为的修改配置
type Option func(*Engine)

// WithConfig 替换全部配置。
//
// 示例:
//
//	config := types.NewConfig()
//	config.DefaultLimit = 0 // 不限制返回行数
//	engine := dataquery.New(dataquery.WithConfig(config))
func WithConfig(config types.Config) Option {
	return func(e *Engine) {
		e.config = config
	}
}

// WithDefaultLimit 设置请求未指定 limit 时返回的行数，0 表示不限制
func WithDefaultLimit(limit int) Option {
	return func(e *Engine) {
		e.config.DefaultLimit = limit
	}
}

// WithHistogramBins 设置直方图默认分箱数
func WithHistogramBins(bins int) Option {
	return func(e *Engine) {
		e.config.DefaultHistogramBins = bins
	}
}

// WithParallelAggregation 并行计算互不依赖的聚合列。
// workers <= 0 时使用 GOMAXPROCS。
func WithParallelAggregation(workers int) Option {
	return func(e *Engine) {
		e.config.AggregationConfig = types.AggregationConfig{Parallel: true, MaxWorkers: workers}
	}
}

// WithClassifier 替换度量分类器。
// 默认的语法分类器按 "SUM(" 等调用形式判断是否为聚合度量。
func WithClassifier(c measure.Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// WithTransformers 设置查询前对数据表执行的转换
//
// 示例:
//
//	engine := dataquery.New(dataquery.WithTransformers(
//		transform.SanitizeColumnNames(),
//		transform.TimeIntelligence("Order_Date"),
//	))
func WithTransformers(transformers ...transform.Transformer) Option {
	return func(e *Engine) {
		e.transformers = append(e.transformers, transformers...)
	}
}

// WithLoaderOptions 追加文件加载选项，作用于 ExecuteFile、Preview 和 Profile
func WithLoaderOptions(opts ...loader.Option) Option {
	return func(e *Engine) {
		e.loaderOptions = append(e.loaderOptions, opts...)
	}
}

// WithLogger 设置自定义日志记录器。
// 允许用户提供自己的日志实现，例如 logger.NewZapLogger。
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log == nil {
			log = logger.NewDiscardLogger()
		}
		e.log = log
	}
}

// WithLogLevel 使用指定级别输出到标准错误
func WithLogLevel(level logger.Level) Option {
	return func(e *Engine) {
		e.log = logger.NewLogger(level, os.Stderr)
	}
}

// WithLogOutput 设置日志输出目标和级别
//
// 示例:
//
//	logFile, _ := os.OpenFile("dataquery.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
//	engine := dataquery.New(dataquery.WithLogOutput(logFile, logger.INFO))
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(e *Engine) {
		e.log = logger.NewLogger(level, output)
	}
}

// WithDiscardLog 禁用日志输出
func WithDiscardLog() Option {
	return func(e *Engine) {
		e.log = logger.NewDiscardLogger()
	}
}
