package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AnswerKind tells which variant an AnswerValue holds.
type AnswerKind int

// Answer kinds.
const (
	AnswerNone AnswerKind = iota
	AnswerNumber
	AnswerText
	AnswerList
)

// AnswerValue is a questionnaire answer: a number, a string, or an ordered list of strings.
// It encodes to the bare JSON value.
type AnswerValue struct {
	Kind   AnswerKind
	Number float64
	Text   string
	List   []string
}

// NumberAnswer wraps a numeric answer.
func NumberAnswer(v float64) AnswerValue {
	return AnswerValue{Kind: AnswerNumber, Number: v}
}

// TextAnswer wraps a string answer.
func TextAnswer(v string) AnswerValue {
	return AnswerValue{Kind: AnswerText, Text: v}
}

// ListAnswer wraps an ordered list answer.
func ListAnswer(v []string) AnswerValue {
	out := make([]string, len(v))
	copy(out, v)
	return AnswerValue{Kind: AnswerList, List: out}
}

// Defined reports whether the value holds any answer.
func (a AnswerValue) Defined() bool {
	return a.Kind != AnswerNone
}

// String renders the answer for display.
func (a AnswerValue) String() string {
	switch a.Kind {
	case AnswerNumber:
		return strconv.FormatFloat(a.Number, 'f', -1, 64)
	case AnswerText:
		return a.Text
	case AnswerList:
		return fmt.Sprintf("%v", a.List)
	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler.
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerNumber:
		return json.Marshal(a.Number)
	case AnswerText:
		return json.Marshal(a.Text)
	case AnswerList:
		list := a.List
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = AnswerValue{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*a = ListAnswer(list)
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("unsupported answer value %s: %w", trimmed, err)
		}
		*a = NumberAnswer(n)
	}
	return nil
}
