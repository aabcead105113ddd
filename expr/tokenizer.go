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

package expr

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType represents token type
type TokenType int

const (
	// TokenIdent identifier token, plain or backtick quoted
	TokenIdent TokenType = iota
	// TokenOperator one of + - * /
	TokenOperator
	// TokenNumber numeric literal
	TokenNumber
	// TokenLeftParen left parenthesis token
	TokenLeftParen
	// TokenRightParen right parenthesis token
	TokenRightParen
	// TokenComma comma token
	TokenComma
)

// String returns the token type name used in error messages
func (t TokenType) String() string {
	switch t {
	case TokenIdent:
		return "identifier"
	case TokenOperator:
		return "operator"
	case TokenNumber:
		return "number"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenComma:
		return "','"
	default:
		return "unknown"
	}
}

// Token represents a token
type Token struct {
	Type TokenType
	// Value is the token text; backticks are stripped from quoted identifiers
	Value string
	// Pos is the rune offset of the token in the formula
	Pos int
}

// tokenize breaks a formula into tokens.
// Signs are never folded into numbers: "a-5" is three tokens, unary minus is
// resolved by the parser.
func tokenize(formula string) ([]Token, error) {
	if len(strings.TrimSpace(formula)) == 0 {
		return nil, fmt.Errorf("empty formula")
	}

	src := []rune(formula)
	var tokens []Token
	i := 0

	for i < len(src) {
		ch := src[i]

		if unicode.IsSpace(ch) {
			i++
			continue
		}

		// `Unit Price`
		if ch == '`' {
			start := i
			i++
			for i < len(src) && src[i] != '`' {
				i++
			}
			if i >= len(src) {
				return nil, fmt.Errorf("unterminated backtick identifier at position %d", start)
			}
			name := string(src[start+1 : i])
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("empty backtick identifier at position %d", start)
			}
			i++
			tokens = append(tokens, Token{Type: TokenIdent, Value: name, Pos: start})
			continue
		}

		if isDigit(ch) || (ch == '.' && i+1 < len(src) && isDigit(src[i+1])) {
			start := i
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			if i < len(src) && src[i] == '.' {
				i++
				for i < len(src) && isDigit(src[i]) {
					i++
				}
			}
			// 科学计数法
			if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
				j := i + 1
				if j < len(src) && (src[j] == '+' || src[j] == '-') {
					j++
				}
				if j < len(src) && isDigit(src[j]) {
					i = j
					for i < len(src) && isDigit(src[i]) {
						i++
					}
				}
			}
			if i < len(src) && isIdentStart(src[i]) {
				return nil, fmt.Errorf("invalid number at position %d", start)
			}
			tokens = append(tokens, Token{Type: TokenNumber, Value: string(src[start:i]), Pos: start})
			continue
		}

		switch ch {
		case '+', '-', '*', '/':
			tokens = append(tokens, Token{Type: TokenOperator, Value: string(ch), Pos: i})
			i++
			continue
		case '(':
			tokens = append(tokens, Token{Type: TokenLeftParen, Value: "(", Pos: i})
			i++
			continue
		case ')':
			tokens = append(tokens, Token{Type: TokenRightParen, Value: ")", Pos: i})
			i++
			continue
		case ',':
			tokens = append(tokens, Token{Type: TokenComma, Value: ",", Pos: i})
			i++
			continue
		case '\'', '"':
			return nil, fmt.Errorf("string literals are not supported (position %d)", i)
		}

		if isIdentStart(ch) {
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			tokens = append(tokens, Token{Type: TokenIdent, Value: string(src[start:i]), Pos: start})
			continue
		}

		return nil, fmt.Errorf("unexpected character '%c' at position %d", ch, i)
	}

	return tokens, nil
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

// isIdentPart allows dots so that names like "order.total" stay one identifier
func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch) || ch == '.'
}

// isPlainIdentifier reports whether name can be written without backticks
func isPlainIdentifier(name string) bool {
	for i, ch := range name {
		if i == 0 && !isIdentStart(ch) {
			return false
		}
		if !isIdentPart(ch) {
			return false
		}
	}
	return name != ""
}
