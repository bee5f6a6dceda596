// Package classify selects the classification rule matching an
// attribute value against a field's schema. It is pure and stateless.
package classify

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
)

// ErrNoRule is returned when no rule matches the value. Callers decide
// the fallback presentation; the layout engine renders such values with
// the plain style instead of failing the report.
var ErrNoRule = errors.New("no classification rule matches value")

// Classify returns the rule matching value under the attribute's
// schema.
//
// Discrete rules match by exact string equality. Range rules are tried
// in declared order and the first satisfied rule wins: a two-bound rule
// requires low <= v <= high, a single-bound rule compares with its own
// operator. Attributes without rules, and values no rule accepts,
// yield ErrNoRule.
func Classify(value any, attr *schema.AttributeSchema) (*schema.ClassificationRule, error) {
	if attr == nil || attr.Kind == schema.RuleNone || len(attr.Rules) == 0 {
		return nil, ErrNoRule
	}

	switch attr.Kind {
	case schema.RuleDiscrete:
		if r := attr.Rule(Text(value)); r != nil {
			return r, nil
		}
		return nil, ErrNoRule
	case schema.RuleRange:
		v, ok := toFloat(value)
		if !ok {
			return nil, ErrNoRule
		}
		for _, r := range attr.Rules {
			if matchRange(v, r) {
				return r, nil
			}
		}
		return nil, ErrNoRule
	}
	return nil, ErrNoRule
}

func matchRange(v float64, r *schema.ClassificationRule) bool {
	switch {
	case r.Low != nil && r.High != nil:
		return *r.Low <= v && v <= *r.High
	case r.High != nil:
		switch r.Operator {
		case "<=":
			return v <= *r.High
		case "<":
			return v < *r.High
		}
	case r.Low != nil:
		switch r.Operator {
		case ">=":
			return v >= *r.Low
		case ">":
			return v > *r.Low
		}
	}
	return false
}

// Text renders an attribute value the way it is compared and reported.
func Text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}
