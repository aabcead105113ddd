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

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType 定义错误类型
type ErrorType int

const (
	ErrorTypeUnknownColumn ErrorType = iota
	ErrorTypeUnsupportedOperator
	ErrorTypeInvalidFilterValue
	ErrorTypeFilterEvaluation
	ErrorTypeMalformedMeasureFormula
	ErrorTypeMissingAggregationDependency
	ErrorTypeRowLevelMeasure
	ErrorTypeAggregation
	ErrorTypeInvalidQuery
	ErrorTypeLoad
	ErrorTypeFileTooLarge
)

// QueryError 查询执行错误
type QueryError struct {
	Type    ErrorType
	Column  string // 出错的列、度量或表达式
	Message string
	Err     error
}

// Error 实现 error 接口
func (e *QueryError) Error() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[%s] %s", e.Type.Name(), e.Message))
	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	return builder.String()
}

// Unwrap returns the underlying cause
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Name 获取错误类型名称
func (t ErrorType) Name() string {
	switch t {
	case ErrorTypeUnknownColumn:
		return "UNKNOWN_COLUMN"
	case ErrorTypeUnsupportedOperator:
		return "UNSUPPORTED_OPERATOR"
	case ErrorTypeInvalidFilterValue:
		return "INVALID_FILTER_VALUE"
	case ErrorTypeFilterEvaluation:
		return "FILTER_EVALUATION_ERROR"
	case ErrorTypeMalformedMeasureFormula:
		return "MALFORMED_MEASURE_FORMULA"
	case ErrorTypeMissingAggregationDependency:
		return "MISSING_AGGREGATION_DEPENDENCY"
	case ErrorTypeRowLevelMeasure:
		return "ROW_LEVEL_MEASURE_ERROR"
	case ErrorTypeAggregation:
		return "AGGREGATION_ERROR"
	case ErrorTypeInvalidQuery:
		return "INVALID_QUERY"
	case ErrorTypeLoad:
		return "LOAD_ERROR"
	case ErrorTypeFileTooLarge:
		return "FILE_TOO_LARGE"
	default:
		return "UNKNOWN_ERROR"
	}
}

// NewError creates a QueryError
func NewError(t ErrorType, column, format string, args ...interface{}) *QueryError {
	return &QueryError{
		Type:    t,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a QueryError carrying a cause
func WrapError(t ErrorType, column string, err error, format string, args ...interface{}) *QueryError {
	return &QueryError{
		Type:    t,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrUnknownColumn 列不存在
func ErrUnknownColumn(column string) *QueryError {
	return NewError(ErrorTypeUnknownColumn, column, "column '%s' not found in dataset", column)
}

// IsErrorType reports whether err (or anything it wraps) is a QueryError of type t
func IsErrorType(err error, t ErrorType) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Type == t
	}
	return false
}

// ErrorTypeOf returns the type of a QueryError, ok is false for other errors
func ErrorTypeOf(err error) (ErrorType, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Type, true
	}
	return 0, false
}
