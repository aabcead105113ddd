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
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Kind is the element kind of a column. It is assigned once when a table is
// loaded and every later stage switches on it instead of sniffing values.
type Kind int

const (
	// KindText string values
	KindText Kind = iota
	// KindNumeric float64 values
	KindNumeric
	// KindTemporal time.Time values
	KindTemporal
	// KindBoolean bool values
	KindBoolean
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumeric:
		return "numeric"
	case KindTemporal:
		return "temporal"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether values of the kind can take part in arithmetic.
// Booleans count as 1/0.
func (k Kind) IsNumeric() bool {
	return k == KindNumeric || k == KindBoolean
}

// InferKind inspects raw cell values and picks the narrowest kind that accepts
// all of them. Missing cells (nil or blank strings) are ignored; a column with
// no values at all is text.
// 推断顺序: numeric -> boolean -> temporal -> text
func InferKind(values []interface{}) Kind {
	seen := 0
	numeric, boolean, temporal := true, true, true
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		seen++
		switch v.(type) {
		case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			boolean, temporal = false, false
			continue
		case bool:
			numeric, temporal = false, false
			continue
		case time.Time:
			numeric, boolean = false, false
			continue
		}
		s := strings.TrimSpace(cast.ToString(v))
		if numeric {
			if _, err := cast.ToFloat64E(s); err != nil {
				numeric = false
			}
		}
		if boolean && !isBoolLiteral(s) {
			boolean = false
		}
		if temporal {
			if _, err := cast.ToTimeE(s); err != nil {
				temporal = false
			}
		}
		if !numeric && !boolean && !temporal {
			return KindText
		}
	}
	switch {
	case seen == 0:
		return KindText
	case numeric:
		return KindNumeric
	case boolean:
		return KindBoolean
	case temporal:
		return KindTemporal
	default:
		return KindText
	}
}

// Coerce converts a raw value to the representation used for kind k.
// Missing values become nil.
func Coerce(v interface{}, k Kind) (interface{}, error) {
	if IsMissing(v) {
		return nil, nil
	}
	switch k {
	case KindNumeric:
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, err
		}
		return normalizeFloat(f), nil
	case KindBoolean:
		if s, ok := v.(string); ok {
			v = strings.ToLower(strings.TrimSpace(s))
		}
		return cast.ToBoolE(v)
	case KindTemporal:
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		return cast.ToTimeE(v)
	default:
		return cast.ToStringE(v)
	}
}

func isBoolLiteral(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false":
		return true
	}
	return false
}
