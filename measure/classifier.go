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

package measure

import (
	"regexp"

	"github.com/rulego/dataquery/expr"
	"github.com/rulego/dataquery/types"
)

// aggregateCallRegex matches an aggregate name immediately followed by "(".
// There is no word boundary, so "Profit_sum(" also matches.
var aggregateCallRegex = regexp.MustCompile(`(?i)(sum|avg|mean|count|min|max|median|std|stddev)\(`)

// Classifier decides whether a formula is evaluated after grouping
type Classifier interface {
	IsAggregate(formula string) bool
}

// ClassifierFunc adapts a function to Classifier
type ClassifierFunc func(formula string) bool

func (f ClassifierFunc) IsAggregate(formula string) bool {
	return f(formula)
}

// SyntacticClassifier is the default classifier: a case-insensitive textual
// check, no parse. Mixed formulas are aggregate.
type SyntacticClassifier struct{}

func (SyntacticClassifier) IsAggregate(formula string) bool {
	return aggregateCallRegex.MatchString(formula)
}

// ParsingClassifier compiles the formula and looks for aggregate calls in the
// tree, so whitespace before "(" is tolerated. Formulas that do not compile
// fall back to the syntactic check.
type ParsingClassifier struct{}

func (ParsingClassifier) IsAggregate(formula string) bool {
	e, err := expr.Compile(formula)
	if err != nil {
		return SyntacticClassifier{}.IsAggregate(formula)
	}
	return e.HasCalls()
}

// DefaultClassifier returns the classifier used when none is configured
func DefaultClassifier() Classifier {
	return SyntacticClassifier{}
}

// Classify splits measures into row-level and aggregate, preserving order
func Classify(c Classifier, measures []types.MeasureDefinition) (rowLevel, aggregate []types.MeasureDefinition) {
	if c == nil {
		c = DefaultClassifier()
	}
	for _, m := range measures {
		if c.IsAggregate(m.Formula) {
			aggregate = append(aggregate, m)
		} else {
			rowLevel = append(rowLevel, m)
		}
	}
	return rowLevel, aggregate
}
