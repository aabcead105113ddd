package expr

import (
	"fmt"
	"strings"
)

// copyNode deep copies expression node
func copyNode(node *ExprNode) *ExprNode {
	if node == nil {
		return nil
	}

	newNode := &ExprNode{
		Type:   node.Type,
		Value:  node.Value,
		Number: node.Number,
		Left:   copyNode(node.Left),
		Right:  copyNode(node.Right),
	}

	if len(node.Args) > 0 {
		newNode.Args = make([]*ExprNode, len(node.Args))
		for i, arg := range node.Args {
			newNode.Args[i] = copyNode(arg)
		}
	}

	return newNode
}

// getOperatorPrecedence 获取运算符优先级
func getOperatorPrecedence(op string) int {
	switch op {
	case "+", "-":
		return 1
	case "*", "/":
		return 2
	default:
		return 0
	}
}

// nodeToString renders a node with the minimal parentheses needed to keep its meaning
func nodeToString(node *ExprNode) string {
	if node == nil {
		return "<nil>"
	}

	switch node.Type {
	case TypeNumber:
		return node.Value
	case TypeField:
		if isPlainIdentifier(node.Value) {
			return node.Value
		}
		return "`" + node.Value + "`"
	case TypeOperator:
		// 0-x from unary minus
		if node.Value == "-" && node.Left != nil && node.Left.Type == TypeNumber && node.Left.Value == "0" && node.Left.Number == 0 {
			return "-" + operandToString(node.Right, 3, false)
		}
		prec := getOperatorPrecedence(node.Value)
		left := operandToString(node.Left, prec, false)
		right := operandToString(node.Right, prec, node.Value == "-" || node.Value == "/")
		return fmt.Sprintf("%s %s %s", left, node.Value, right)
	case TypeFunction:
		args := make([]string, len(node.Args))
		for i, arg := range node.Args {
			args[i] = nodeToString(arg)
		}
		return fmt.Sprintf("%s(%s)", node.Value, strings.Join(args, ", "))
	default:
		return fmt.Sprintf("<%s:%s>", node.Type, node.Value)
	}
}

func operandToString(node *ExprNode, parentPrec int, strict bool) string {
	s := nodeToString(node)
	if node == nil || node.Type != TypeOperator {
		return s
	}
	prec := getOperatorPrecedence(node.Value)
	if prec < parentPrec || (strict && prec == parentPrec) {
		return "(" + s + ")"
	}
	return s
}
