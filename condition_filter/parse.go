package condition_filter

import (
	"errors"
	"fmt"
	"strings"
)

// operators in increasing precedence
const (
	opSharp = iota
	opLeft
	opRight
	opOr
	opAnd
	opNot
)

const (
	outsideCondition = iota
	inCondition
	inString
)

var errorParse = errors.New("parse condition error")

// OPNode is a node of the boolean tree. Leaves carry a condition.
type OPNode struct {
	op        int
	left      *OPNode
	right     *OPNode
	condition Condition
}

func (root *OPNode) Pass(event map[string]any) bool {
	if root.condition != nil {
		return root.condition.Pass(event)
	}

	switch root.op {
	case opAnd:
		return root.left.Pass(event) && root.right.Pass(event)
	case opOr:
		return root.left.Pass(event) || root.right.Pass(event)
	case opNot:
		return !root.right.Pass(event)
	}
	return false
}

// parseBoolTree parses conditions joined with &&, || and !, grouped with
// parentheses.
func parseBoolTree(c string) (*OPNode, error) {
	c = strings.TrimSpace(c)
	if c == "" {
		return nil, errorParse
	}

	rpn, err := buildRPNStack(c)
	if err != nil {
		return nil, fmt.Errorf("parse `%s`: %w", c, err)
	}

	s := make([]*OPNode, 0)
	for _, e := range rpn {
		if n, ok := e.(*OPNode); ok {
			s = append(s, n)
			continue
		}

		op := e.(int)
		switch op {
		case opNot:
			if len(s) < 1 {
				return nil, fmt.Errorf("parse `%s`: %w", c, errorParse)
			}
			s[len(s)-1] = &OPNode{op: op, right: s[len(s)-1]}
		case opAnd, opOr:
			if len(s) < 2 {
				return nil, fmt.Errorf("parse `%s`: %w", c, errorParse)
			}
			node := &OPNode{op: op, left: s[len(s)-2], right: s[len(s)-1]}
			s = append(s[:len(s)-2], node)
		default:
			// unbalanced parenthesis
			return nil, fmt.Errorf("parse `%s`: %w", c, errorParse)
		}
	}

	if len(s) != 1 {
		return nil, fmt.Errorf("parse `%s`: %w", c, errorParse)
	}
	return s[0], nil
}

// buildRPNStack turns the expression into reverse polish notation; every
// element is either a leaf *OPNode or an operator.
func buildRPNStack(c string) ([]any, error) {
	var (
		state          = outsideCondition
		parenthesis    = 0
		conditionStart int

		s1 = []int{opSharp}
		s2 = make([]any, 0)
	)

	next := func(i int) byte {
		if i+1 < len(c) {
			return c[i+1]
		}
		return 0
	}

	for i := 0; i < len(c); i++ {
		switch c[i] {
		case '(':
			switch state {
			case outsideCondition:
				s1 = append(s1, opLeft)
			case inCondition:
				parenthesis++
			}
		case ')':
			switch state {
			case outsideCondition:
				if !findLeftInS1(&s1, &s2) {
					return nil, fmt.Errorf("%w at `%s`", errorParse, c[:i+1])
				}
			case inCondition:
				parenthesis--
				if parenthesis == 0 {
					condition, err := NewSingleCondition(c[conditionStart : i+1])
					if err != nil {
						return nil, err
					}
					s2 = append(s2, &OPNode{condition: condition})
					state = outsideCondition
				}
			}
		case '&', '|':
			if state != outsideCondition {
				continue
			}
			if next(i) != c[i] {
				return nil, fmt.Errorf("%w at `%s`", errorParse, c[:i+1])
			}
			op := opAnd
			if c[i] == '|' {
				op = opOr
			}
			if !pushOp(op, &s1, &s2) {
				return nil, fmt.Errorf("%w at `%s`", errorParse, c[:i+1])
			}
			i++
		case '!':
			if state != outsideCondition {
				continue
			}
			if n := next(i); n == '|' || n == '&' || n == ' ' || n == 0 {
				return nil, fmt.Errorf("%w at `%s`", errorParse, c[:i+1])
			}
			pushOp(opNot, &s1, &s2)
		case '"':
			switch state {
			case outsideCondition:
				return nil, fmt.Errorf("%w at `%s`", errorParse, c[:i+1])
			case inCondition:
				state = inString
			case inString:
				state = inCondition
			}
		case ' ':
		default:
			if state == outsideCondition {
				state = inCondition
				conditionStart = i
			}
		}
	}

	if state != outsideCondition {
		return nil, errorParse
	}

	for j := len(s1) - 1; j > 0; j-- {
		s2 = append(s2, s1[j])
	}
	return s2, nil
}

func pushOp(op int, s1 *[]int, s2 *[]any) bool {
	if op == opRight {
		return findLeftInS1(s1, s2)
	}
	return compareOpWithS1(op, s1, s2)
}

// findLeftInS1 pops operators to s2 until the matching (.
func findLeftInS1(s1 *[]int, s2 *[]any) bool {
	var j int
	for j = len(*s1) - 1; j > 0 && (*s1)[j] != opLeft; j-- {
		*s2 = append(*s2, (*s1)[j])
	}

	if j == 0 {
		return false
	}

	*s1 = (*s1)[:j]
	return true
}

// compareOpWithS1 pops operators binding at least as tight as op, then pushes
// op. ! is right associative.
func compareOpWithS1(op int, s1 *[]int, s2 *[]any) bool {
	var j int
	for j = len(*s1) - 1; j > 0; j-- {
		top := (*s1)[j]
		if top == opLeft || op > top || (op == opNot && top == opNot) {
			break
		}
		*s2 = append(*s2, top)
	}

	*s1 = (*s1)[:j+1]
	*s1 = append(*s1, op)
	return true
}
