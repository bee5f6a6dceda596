package schema

import (
	"regexp"
	"strconv"
	"strings"
)

// RuleKind tells how an attribute's values map to presentation rules.
type RuleKind int

const (
	RuleNone RuleKind = iota
	RuleDiscrete
	RuleRange
)

// ParseRuleKind reads the classification kind column of the Additional
// Fields sheet.
func ParseRuleKind(s string) RuleKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "discrete":
		return RuleDiscrete
	case "range":
		return RuleRange
	}
	return RuleNone
}

// StyleRole is an opaque identifier for a presentation style. The core
// only selects roles; binding a role to concrete fonts, borders and
// fills is the writer's concern.
type StyleRole string

// Built-in roles used by the layout engine. Rule roles are minted per
// rule cell by the schema reader.
const (
	RoleNone           StyleRole = ""
	RoleTitle          StyleRole = "title"
	RoleRegular        StyleRole = "regular"
	RoleRegularLeft    StyleRole = "regular left"
	RoleItalics        StyleRole = "italics"
	RoleNumber         StyleRole = "regular number"
	RolePercent        StyleRole = "regular percent"
	RoleValueHeader    StyleRole = "value header"
	RoleValueSubheader StyleRole = "value subheader"
	RoleColumnHeader   StyleRole = "column header"
)

// RuleStyleRole builds the opaque role id for one rule cell.
func RuleStyleRole(dataset, field, key string) StyleRole {
	return StyleRole("rule:" + dataset + ":" + field + ":" + key)
}

// AttributeSchema holds the classification and formatting rule set for
// one ancillary attribute of one dataset.
type AttributeSchema struct {
	// Field is the raw attribute field name.
	Field string

	// Label is the display label, defaulting to Field.
	Label string

	// Companions are fields whose values are appended parenthetically
	// after the attribute value.
	Companions []string

	Kind RuleKind

	// Rules in declared order; order is significant for range matching.
	Rules []*ClassificationRule
}

// Rule returns the rule with the given key, or nil.
func (a *AttributeSchema) Rule(key string) *ClassificationRule {
	for _, r := range a.Rules {
		if r.Key == key {
			return r
		}
	}
	return nil
}

// ClassificationRule matches an attribute value either by exact
// equality (discrete) or by a numeric interval (range), selecting a
// presentation style role.
type ClassificationRule struct {
	// Key is the literal rule-cell text; for discrete rules it is the
	// matched value itself.
	Key string

	Style StyleRole

	// Range bounds. Exactly one of Low/High is nil unless both bounds
	// are closed (low <= x <= high). A rule with both nil never
	// matches (malformed rule cell, not validated).
	Low  *float64
	High *float64

	// Operator compares against the single closed bound: "<", "<=",
	// ">" or ">=". Empty for two-bound rules.
	Operator string
}

// rangeRx extracts a "low-high" numeric pattern; numbers may be
// negative and decimal.
var rangeRx = regexp.MustCompile(`(-?\d+\.?\d*)-(-?\d+\.?\d*)`)

// ParseRangeRule parses the text of one range-rule cell. The text is
// first scanned for a low-high pattern; failing that, comparison
// operators are tried in fixed precedence ("<=", ">=" before "<", ">")
// and the remainder becomes the single bound. A trailing '%' divides
// the bound by 100. Malformed cells yield a rule with no bounds.
func ParseRangeRule(text string) *ClassificationRule {
	res := &ClassificationRule{Key: text}
	s := strings.ReplaceAll(text, " ", "")

	if m := rangeRx.FindStringSubmatch(s); m != nil {
		res.Low = parseBound(m[1])
		res.High = parseBound(m[2])
		return res
	}

	switch {
	case strings.Contains(s, "<="):
		res.Operator = "<="
		res.High = parseBound(strings.ReplaceAll(s, "<=", ""))
	case strings.Contains(s, ">="):
		res.Operator = ">="
		res.Low = parseBound(strings.ReplaceAll(s, ">=", ""))
	case strings.Contains(s, "<"):
		res.Operator = "<"
		res.High = parseBound(strings.ReplaceAll(s, "<", ""))
	case strings.Contains(s, ">"):
		res.Operator = ">"
		res.Low = parseBound(strings.ReplaceAll(s, ">", ""))
	}
	return res
}

func parseBound(s string) *float64 {
	if s == "" {
		return nil
	}
	percent := strings.Contains(s, "%")
	s = strings.ReplaceAll(s, "%", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if percent {
		f /= 100
	}
	return &f
}
