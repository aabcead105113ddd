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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

func readCSV(path string, limit int) (*rawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return parseCSV(f, limit)
}

// parseCSV reads a header row followed by at most limit records (limit < 0
// reads all). Short records are padded with missing cells.
func parseCSV(r io.Reader, limit int) (*rawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	names := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		names[i] = strings.TrimSpace(h)
	}
	if err := uniqueNames(names); err != nil {
		return nil, err
	}

	raw := &rawTable{names: names, values: make([][]interface{}, len(names))}
	for limit < 0 || raw.rows < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", raw.rows+1, err)
		}
		if len(record) > len(names) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", raw.rows+1, len(record), len(names))
		}
		for j := range names {
			var v interface{}
			if j < len(record) && strings.TrimSpace(record[j]) != "" {
				v = record[j]
			}
			raw.values[j] = append(raw.values[j], v)
		}
		raw.rows++
	}
	return raw, nil
}
