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
	"strconv"

	"github.com/rulego/dataquery/types"
)

// parseTokens parses a complete token list; trailing tokens are an error.
//
// Grammar:
//
//	expression := term { ("+" | "-") term }
//	term       := unary { ("*" | "/") unary }
//	unary      := ("-" | "+") unary | primary
//	primary    := number | identifier | call | "(" expression ")"
//	call       := aggregate "(" [ expression { "," expression } ] ")"
func parseTokens(tokens []Token) (*ExprNode, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty formula")
	}
	node, remaining, err := parseArithmeticExpression(tokens)
	if err != nil {
		return nil, err
	}
	if len(remaining) > 0 {
		return nil, fmt.Errorf("unexpected %s '%s' at position %d", remaining[0].Type, remaining[0].Value, remaining[0].Pos)
	}
	return node, nil
}

// parseArithmeticExpression parses + and -
func parseArithmeticExpression(tokens []Token) (*ExprNode, []Token, error) {
	left, remaining, err := parseTermExpression(tokens)
	if err != nil {
		return nil, nil, err
	}

	for len(remaining) > 0 && isOperatorToken(remaining[0], "+", "-") {
		op := remaining[0].Value
		right, newRemaining, err := parseTermExpression(remaining[1:])
		if err != nil {
			return nil, nil, err
		}
		left = &ExprNode{Type: TypeOperator, Value: op, Left: left, Right: right}
		remaining = newRemaining
	}

	return left, remaining, nil
}

// parseTermExpression parses * and /
func parseTermExpression(tokens []Token) (*ExprNode, []Token, error) {
	left, remaining, err := parseUnaryExpression(tokens)
	if err != nil {
		return nil, nil, err
	}

	for len(remaining) > 0 && isOperatorToken(remaining[0], "*", "/") {
		op := remaining[0].Value
		right, newRemaining, err := parseUnaryExpression(remaining[1:])
		if err != nil {
			return nil, nil, err
		}
		left = &ExprNode{Type: TypeOperator, Value: op, Left: left, Right: right}
		remaining = newRemaining
	}

	return left, remaining, nil
}

// parseUnaryExpression turns -x into 0-x; a leading + is dropped
func parseUnaryExpression(tokens []Token) (*ExprNode, []Token, error) {
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("unexpected end of formula")
	}

	if isOperatorToken(tokens[0], "-", "+") {
		operand, remaining, err := parseUnaryExpression(tokens[1:])
		if err != nil {
			return nil, nil, err
		}
		if tokens[0].Value == "+" {
			return operand, remaining, nil
		}
		return &ExprNode{
			Type:  TypeOperator,
			Value: "-",
			Left:  &ExprNode{Type: TypeNumber, Value: "0"},
			Right: operand,
		}, remaining, nil
	}

	return parsePrimaryExpression(tokens)
}

func parsePrimaryExpression(tokens []Token) (*ExprNode, []Token, error) {
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("unexpected end of formula")
	}

	token := tokens[0]
	switch token.Type {
	case TokenLeftParen:
		inner, remaining, err := parseArithmeticExpression(tokens[1:])
		if err != nil {
			return nil, nil, err
		}
		if len(remaining) == 0 || remaining[0].Type != TokenRightParen {
			return nil, nil, fmt.Errorf("missing closing parenthesis for '(' at position %d", token.Pos)
		}
		return inner, remaining[1:], nil

	case TokenNumber:
		num, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid number '%s' at position %d", token.Value, token.Pos)
		}
		return &ExprNode{Type: TypeNumber, Value: token.Value, Number: num}, tokens[1:], nil

	case TokenIdent:
		if len(tokens) > 1 && tokens[1].Type == TokenLeftParen {
			return parseFunctionCall(tokens)
		}
		return &ExprNode{Type: TypeField, Value: token.Value}, tokens[1:], nil
	}

	return nil, nil, fmt.Errorf("unexpected %s '%s' at position %d", token.Type, token.Value, token.Pos)
}

// parseFunctionCall accepts only the aggregate function names
func parseFunctionCall(tokens []Token) (*ExprNode, []Token, error) {
	name := tokens[0]
	if _, ok := types.ParseAggregateType(name.Value); !ok {
		return nil, nil, fmt.Errorf("unsupported function '%s' at position %d", name.Value, name.Pos)
	}
	remaining := tokens[2:]

	var args []*ExprNode
	if len(remaining) > 0 && remaining[0].Type == TokenRightParen {
		return &ExprNode{Type: TypeFunction, Value: name.Value}, remaining[1:], nil
	}

	for {
		arg, newRemaining, err := parseArithmeticExpression(remaining)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, arg)
		remaining = newRemaining

		if len(remaining) == 0 {
			return nil, nil, fmt.Errorf("missing closing parenthesis in call to %s", name.Value)
		}
		if remaining[0].Type == TokenRightParen {
			break
		}
		if remaining[0].Type != TokenComma {
			return nil, nil, fmt.Errorf("expected ',' or ')' in call to %s at position %d", name.Value, remaining[0].Pos)
		}
		remaining = remaining[1:]
	}

	return &ExprNode{Type: TypeFunction, Value: name.Value, Args: args}, remaining[1:], nil
}

func isOperatorToken(t Token, ops ...string) bool {
	if t.Type != TokenOperator {
		return false
	}
	for _, op := range ops {
		if t.Value == op {
			return true
		}
	}
	return false
}
