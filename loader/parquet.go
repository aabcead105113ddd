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
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/cast"
)

func readParquet(path string, limit int) (*rawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	fields := pqFile.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}
	if err := uniqueNames(names); err != nil {
		return nil, err
	}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	raw := &rawTable{names: names, values: make([][]interface{}, len(names))}
	for limit < 0 || raw.rows < limit {
		row := make(map[string]interface{})
		if err := reader.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row %d: %w", raw.rows+1, err)
		}
		for j, name := range names {
			raw.values[j] = append(raw.values[j], parquetValue(row[name]))
		}
		raw.rows++
	}
	return raw, nil
}

// parquetValue maps decoded parquet values onto cell representations
func parquetValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case bool, string, time.Time:
		return val
	case []byte:
		return string(val)
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToFloat64(val)
	}
	return cast.ToString(v)
}
