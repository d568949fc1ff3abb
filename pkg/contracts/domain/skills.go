package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMalformedSkillList is returned when a serialized skill list cannot be parsed
var ErrMalformedSkillList = errors.New("malformed skill list")

// SkillSet is an immutable, sorted set of non-empty skill names
type SkillSet struct {
	items []string
}

// NewSkillSet builds a set from raw names. Names are trimmed; empty names and
// duplicates are dropped.
func NewSkillSet(skills ...string) SkillSet {
	seen := make(map[string]bool, len(skills))
	items := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		items = append(items, s)
	}
	sort.Strings(items)
	return SkillSet{items: items}
}

// Items returns a copy of the skills in ascending order
func (s SkillSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of skills
func (s SkillSet) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no skills
func (s SkillSet) IsEmpty() bool {
	return len(s.items) == 0
}

// Contains reports whether skill is in the set
func (s SkillSet) Contains(skill string) bool {
	i := sort.SearchStrings(s.items, skill)
	return i < len(s.items) && s.items[i] == skill
}

// Equal reports whether both sets hold the same skills
func (s SkillSet) Equal(other SkillSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if s.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

// String serializes the set as a list literal, e.g. ['excel', 'sql'].
// ParseSkillList(s.String()) returns a set equal to s.
func (s SkillSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range s.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		for _, r := range item {
			if r == '\'' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}

// MarshalJSON encodes the set as a JSON array
func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// ParseSkillList parses a list literal such as "['sql', 'python']".
// Empty input, "nan", "none" and "null" yield an empty set without error.
func ParseSkillList(raw string) (SkillSet, error) {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "nan", "none", "null":
		return SkillSet{}, nil
	}

	items, err := parseQuotedList(trimmed, '[', ']')
	if err != nil {
		return SkillSet{}, err
	}
	return NewSkillSet(items...), nil
}

// parseQuotedList reads a whole list literal; nothing may follow the closing bracket
func parseQuotedList(s string, open, close byte) ([]string, error) {
	p := listScanner{src: s}
	p.skipSpace()
	items, err := p.list(open, close)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.done() {
		return nil, fmt.Errorf("%w: trailing characters at offset %d", ErrMalformedSkillList, p.pos)
	}
	return items, nil
}

type listScanner struct {
	src string
	pos int
}

func (p *listScanner) done() bool {
	return p.pos >= len(p.src)
}

func (p *listScanner) skipSpace() {
	for !p.done() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *listScanner) consume(c byte) bool {
	if !p.done() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// list reads open, then quoted items separated by commas, then close.
// A single trailing comma is accepted.
func (p *listScanner) list(open, close byte) ([]string, error) {
	if !p.consume(open) {
		return nil, fmt.Errorf("%w: expected %q at offset %d", ErrMalformedSkillList, open, p.pos)
	}

	var items []string
	for {
		p.skipSpace()
		if p.consume(close) {
			return items, nil
		}
		item, err := p.quoted()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(close) {
			return items, nil
		}
		return nil, fmt.Errorf("%w: expected ',' or %q at offset %d", ErrMalformedSkillList, close, p.pos)
	}
}

// quoted reads a single- or double-quoted string with backslash escapes
func (p *listScanner) quoted() (string, error) {
	if p.done() {
		return "", fmt.Errorf("%w: unexpected end of input", ErrMalformedSkillList)
	}
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", fmt.Errorf("%w: expected quote at offset %d", ErrMalformedSkillList, p.pos)
	}
	p.pos++

	var b strings.Builder
	for !p.done() {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src):
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case c == quote:
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("%w: unterminated string", ErrMalformedSkillList)
}

// ParseTechnologyMap parses job_type_skills, a mapping literal such as
// "{'programming': ['python', 'sql'], 'analyst_tools': ['excel']}", into
// skill -> technology category.
func ParseTechnologyMap(raw string) (map[string]string, error) {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "nan", "none", "null", "{}":
		return map[string]string{}, nil
	}

	p := listScanner{src: trimmed}
	if !p.consume('{') {
		return nil, fmt.Errorf("%w: expected '{'", ErrMalformedSkillList)
	}

	out := make(map[string]string)
	for {
		p.skipSpace()
		if p.consume('}') {
			break
		}
		category, err := p.quoted()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(':') {
			return nil, fmt.Errorf("%w: expected ':' at offset %d", ErrMalformedSkillList, p.pos)
		}
		p.skipSpace()

		items, err := p.list('[', ']')
		if err != nil {
			return nil, err
		}

		category = strings.TrimSpace(category)
		for _, skill := range items {
			skill = strings.TrimSpace(skill)
			if skill == "" {
				continue
			}
			if _, exists := out[skill]; !exists {
				out[skill] = category
			}
		}

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume('}') {
			break
		}
		return nil, fmt.Errorf("%w: expected ',' or '}' at offset %d", ErrMalformedSkillList, p.pos)
	}
	return out, nil
}
