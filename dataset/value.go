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

package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// IsMissing reports whether v represents a missing cell.
// nil, NaN and blank strings are all missing.
func IsMissing(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(val)
	case float32:
		return math.IsNaN(float64(val))
	case string:
		return strings.TrimSpace(val) == ""
	}
	return false
}

// normalizeFloat maps NaN to nil so that missing is always nil inside a table
func normalizeFloat(f float64) interface{} {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

// Float wraps an arithmetic result as a cell value (NaN becomes missing)
func Float(f float64) interface{} {
	return normalizeFloat(f)
}

// ToFloat converts a cell of kind k to float64 for arithmetic.
// ok is false when the cell is missing.
func ToFloat(v interface{}, k Kind) (f float64, ok bool, err error) {
	if IsMissing(v) {
		return 0, false, nil
	}
	switch k {
	case KindNumeric:
		f, err = cast.ToFloat64E(v)
		return f, err == nil, err
	case KindBoolean:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return 0, false, err
		}
		if b {
			return 1, true, nil
		}
		return 0, true, nil
	default:
		return 0, false, fmt.Errorf("%s value %v is not numeric", k, v)
	}
}

// Compare orders two non-missing values of the same kind.
// Returns -1, 0 or 1. Values of different Go types are compared by their
// string form so that ordering is always total.
func Compare(a, b interface{}) int {
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			return compareFloat(x, y)
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			switch {
			case x.Before(y):
				return -1
			case x.After(y):
				return 1
			}
			return 0
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	}
	// 类型不一致时退化为字符串比较
	return strings.Compare(FormatValue(a), FormatValue(b))
}

func compareFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// FormatValue renders a cell for labels, keys and text output.
// Missing values render as "null".
func FormatValue(v interface{}) string {
	if IsMissing(v) {
		return "null"
	}
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	}
	return cast.ToString(v)
}
