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

package types

import "runtime"

const (
	// DefaultLimit 请求未指定 limit 时的默认返回行数
	DefaultLimit = 1000
	// DefaultHistogramBins 直方图默认分箱数
	DefaultHistogramBins = 10
	// DefaultMaxFileSize 默认最大文件大小 50MB
	DefaultMaxFileSize int64 = 50 * 1024 * 1024
	// DefaultPreviewRows 预览默认行数
	DefaultPreviewRows = 100
)

// Config 查询引擎配置
type Config struct {
	// DefaultLimit applies when a request leaves limit at 0. 0 disables it.
	DefaultLimit int `json:"defaultLimit"`
	// DefaultHistogramBins applies when a histogram request has no bin count
	DefaultHistogramBins int `json:"defaultHistogramBins"`

	// 聚合性能配置
	AggregationConfig AggregationConfig `json:"aggregationConfig"`
	// 文件加载配置
	LoaderConfig LoaderConfig `json:"loaderConfig"`
}

// AggregationConfig 聚合执行配置
type AggregationConfig struct {
	// Parallel runs independent (column, function) reductions concurrently
	Parallel bool `json:"parallel"`
	// MaxWorkers bounds the number of concurrent reductions; <=0 means GOMAXPROCS
	MaxWorkers int `json:"maxWorkers"`
}

// LoaderConfig 文件加载配置
type LoaderConfig struct {
	MaxFileSize int64 `json:"maxFileSize"` // 最大文件大小，<=0 不限制
	PreviewRows int   `json:"previewRows"` // 预览行数
	// KindSampleSize caps the number of rows inspected per column when
	// inferring kinds; <=0 inspects every row
	KindSampleSize int `json:"kindSampleSize"`
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return Config{
		DefaultLimit:         DefaultLimit,
		DefaultHistogramBins: DefaultHistogramBins,
		AggregationConfig:    DefaultAggregationConfig(),
		LoaderConfig:         DefaultLoaderConfig(),
	}
}

// DefaultAggregationConfig 默认聚合配置，顺序执行
func DefaultAggregationConfig() AggregationConfig {
	return AggregationConfig{
		Parallel:   false,
		MaxWorkers: 0,
	}
}

// ParallelAggregationConfig 并行聚合配置预设
func ParallelAggregationConfig() AggregationConfig {
	return AggregationConfig{
		Parallel:   true,
		MaxWorkers: runtime.GOMAXPROCS(0),
	}
}

// DefaultLoaderConfig 默认加载配置
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		MaxFileSize: DefaultMaxFileSize,
		PreviewRows: DefaultPreviewRows,
	}
}

// Workers returns the effective worker bound
func (c AggregationConfig) Workers() int {
	if c.MaxWorkers > 0 {
		return c.MaxWorkers
	}
	return runtime.GOMAXPROCS(0)
}

// EffectiveLimit resolves a request limit against the configured default.
// The result is <0 when no truncation should happen.
func (c Config) EffectiveLimit(requested int) int {
	switch {
	case requested > 0:
		return requested
	case requested < 0:
		return -1
	case c.DefaultLimit > 0:
		return c.DefaultLimit
	default:
		return -1
	}
}

// EffectiveBins resolves a histogram bin count against the configured default
func (c Config) EffectiveBins(requested int) int {
	if requested > 0 {
		return requested
	}
	if c.DefaultHistogramBins > 0 {
		return c.DefaultHistogramBins
	}
	return DefaultHistogramBins
}
