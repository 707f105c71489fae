package policy

import (
	"encoding/json"
	"fmt"
)

const (
	// Version is the IAM policy language version of every generated document.
	Version = "2012-10-17"

	EffectAllow = "Allow"
	EffectDeny  = "Deny"

	// AllResources matches every resource of the granted actions.
	AllResources = "*"
)

// Document is an IAM policy document.
type Document struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement is one permission rule within a Document.
type Statement struct {
	Effect    string    `json:"Effect"`
	Action    Value     `json:"Action"`
	Resource  Value     `json:"Resource"`
	Condition Condition `json:"Condition,omitempty"`
}

// Condition maps a condition operator to its key/value pairs,
// e.g. {"StringEquals": {"iam:PassedToService": "lambda.amazonaws.com"}}.
type Condition map[string]map[string]string

// Value holds an Action or Resource element. IAM accepts either a bare
// string or a list of strings; Value keeps whichever form it was built with.
type Value struct {
	items  []string
	single bool
}

// One returns a Value that encodes as a bare string.
func One(s string) Value {
	return Value{items: []string{s}, single: true}
}

// List returns a Value that encodes as a list, even when empty.
func List(items ...string) Value {
	return Value{items: items}
}

// Strings returns the entries of v in order.
func (v Value) Strings() []string {
	out := make([]string, len(v.items))
	copy(out, v.items)
	return out
}

// Len returns the number of entries in v.
func (v Value) Len() int {
	return len(v.items)
}

// IsSingle reports whether v encodes as a bare string.
func (v Value) IsSingle() bool {
	return v.single && len(v.items) == 1
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsSingle() {
		return json.Marshal(v.items[0])
	}
	if v.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.items)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch t := raw.(type) {
	case string:
		*v = One(t)
	case []interface{}:
		items := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("policy value entries must be strings, got %T", item)
			}
			items = append(items, s)
		}
		*v = List(items...)
	default:
		return fmt.Errorf("policy value must be a string or a list of strings, got %T", raw)
	}
	return nil
}

// Option is a contribution to a Document that is either present or absent.
type Option struct {
	statements []Statement
	present    bool
}

// Some wraps statements as a present contribution.
func Some(statements ...Statement) Option {
	return Option{statements: statements, present: true}
}

// None is the absent contribution.
func None() Option {
	return Option{}
}

// When calls build only if cond holds.
func When(cond bool, build func() []Statement) Option {
	if !cond {
		return None()
	}
	return Some(build()...)
}

// Statements returns the statements carried by o, nil when absent.
func (o Option) Statements() []Statement {
	if !o.present {
		return nil
	}
	return o.statements
}
