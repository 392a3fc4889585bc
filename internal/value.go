package internal

import (
	"fmt"
	"math"
	"strconv"
)

// isTruthy implements Lox truthiness: nil and false are falsy, everything
// else (including 0 and "") is truthy.
func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual is same-variant structural equality; different variants are never
// equal except that nil == nil.
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// stringify formats a runtime value for `print`, matching spec §4.5:
// integers print without a trailing ".0", nil prints as "nil", negative
// zero prints as "0".
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatNumber(val)
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	if math.Trunc(n) == n && !math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'f', 0, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func isNumber(v interface{}) bool {
	_, ok := v.(float64)
	return ok
}

func isString(v interface{}) bool {
	_, ok := v.(string)
	return ok
}
