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

package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/logger"
	"github.com/rulego/dataquery/types"
)

// Format 文件格式
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// DetectFormat picks the format from the file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	}
	return "", fmt.Errorf("unsupported file type %q", filepath.Ext(path))
}

type options struct {
	config types.LoaderConfig
	limit  int
	log    logger.Logger
}

// Option configures a load
type Option func(*options)

// WithConfig replaces the loader configuration
func WithConfig(c types.LoaderConfig) Option {
	return func(o *options) {
		o.config = c
	}
}

// WithMaxFileSize rejects files larger than n bytes; n <= 0 disables the check
func WithMaxFileSize(n int64) Option {
	return func(o *options) {
		o.config.MaxFileSize = n
	}
}

// WithKindSampleSize infers column kinds from the first n non-missing values;
// n <= 0 inspects every value
func WithKindSampleSize(n int) Option {
	return func(o *options) {
		o.config.KindSampleSize = n
	}
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		config: types.DefaultLoaderConfig(),
		limit:  -1,
		log:    logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load reads a CSV or Parquet file into a table with inferred column kinds.
// Empty cells are missing.
func Load(path string, opts ...Option) (*dataset.Table, error) {
	return load(path, newOptions(opts))
}

// Preview reads at most n data rows. n <= 0 uses the configured preview size.
func Preview(path string, n int, opts ...Option) (*dataset.Table, error) {
	o := newOptions(opts)
	if n <= 0 {
		n = o.config.PreviewRows
	}
	if n <= 0 {
		n = types.DefaultPreviewRows
	}
	o.limit = n
	return load(path, o)
}

func load(path string, o *options) (*dataset.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeLoad, path, err, "cannot load '%s'", path)
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeLoad, path, err, "cannot load '%s'", path)
	}
	if o.config.MaxFileSize > 0 && stat.Size() > o.config.MaxFileSize {
		return nil, types.NewError(types.ErrorTypeFileTooLarge, path,
			"file '%s' is %d bytes, maximum is %d", path, stat.Size(), o.config.MaxFileSize)
	}

	var raw *rawTable
	switch format {
	case FormatCSV:
		raw, err = readCSV(path, o.limit)
	case FormatParquet:
		raw, err = readParquet(path, o.limit)
	}
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeLoad, path, err, "cannot load '%s'", path)
	}

	table, err := raw.build(o.config.KindSampleSize)
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeLoad, path, err, "cannot load '%s'", path)
	}
	o.log.Debug("loaded %s: %d rows, %d columns", path, table.Len(), len(table.Columns()))
	return table, nil
}

// rawTable holds cells as read from the file, column by column
type rawTable struct {
	names  []string
	values [][]interface{}
	rows   int
}

func (r *rawTable) build(sampleSize int) (*dataset.Table, error) {
	columns := make([]dataset.Column, len(r.names))
	coerced := make([][]interface{}, len(r.names))
	for j, name := range r.names {
		kind := dataset.InferKind(sample(r.values[j], sampleSize))
		values, err := coerceAll(r.values[j], kind)
		if err != nil {
			// 样本之外的值不符合推断类型，按全部值重新推断
			kind = dataset.InferKind(r.values[j])
			if values, err = coerceAll(r.values[j], kind); err != nil {
				return nil, fmt.Errorf("column '%s': %w", name, err)
			}
		}
		columns[j] = dataset.Column{Name: name, Kind: kind}
		coerced[j] = values
	}

	rows := make([]dataset.Row, r.rows)
	for i := range rows {
		row := make(dataset.Row, len(r.names))
		for j, name := range r.names {
			row[name] = coerced[j][i]
		}
		rows[i] = row
	}
	return dataset.NewTable(columns, rows)
}

// sample returns up to n non-missing values; n <= 0 returns all of them
func sample(values []interface{}, n int) []interface{} {
	if n <= 0 {
		return values
	}
	out := make([]interface{}, 0, n)
	for _, v := range values {
		if dataset.IsMissing(v) {
			continue
		}
		out = append(out, v)
		if len(out) == n {
			break
		}
	}
	return out
}

func coerceAll(values []interface{}, kind dataset.Kind) ([]interface{}, error) {
	out := make([]interface{}, len(values))
	for i, v := range values {
		c, err := dataset.Coerce(v, kind)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out[i] = c
	}
	return out, nil
}

// uniqueNames rejects blank and duplicate column names
func uniqueNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for i, n := range names {
		if n == "" {
			return fmt.Errorf("column %d has no name", i+1)
		}
		if seen[n] {
			return fmt.Errorf("duplicate column '%s'", n)
		}
		seen[n] = true
	}
	return nil
}
