// Package search implements the filter query language of the list screen.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/microqrart/internal/model"
)

// FilterExpr represents a filter expression that can match records
type FilterExpr interface {
	Matches(rec model.Record) bool
	String() string
}

// FuzzyExpr matches records whose title or source fuzzy-matches the term
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: strings.ToLower(term)}
}

func (e *FuzzyExpr) Matches(rec model.Record) bool {
	return fuzzy.MatchFold(e.term, rec.Title) || fuzzy.MatchFold(e.term, rec.Source)
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// FieldExpr matches records whose field contains the value, ignoring case
type FieldExpr struct {
	field FieldType
	value string
}

func NewFieldExpr(field FieldType, value string) *FieldExpr {
	return &FieldExpr{field: field, value: strings.ToLower(value)}
}

func (e *FieldExpr) Matches(rec model.Record) bool {
	return strings.Contains(strings.ToLower(e.field.valueOf(rec)), e.value)
}

func (e *FieldExpr) String() string {
	return fmt.Sprintf("%s(%q)", e.field, e.value)
}

// RegexExpr matches records whose title matches a regular expression
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %v", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(rec model.Record) bool {
	return e.re.MatchString(rec.Title)
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// AlwaysMatchExpr matches every record; it is the empty query
type AlwaysMatchExpr struct{}

func (AlwaysMatchExpr) Matches(model.Record) bool { return true }

func (AlwaysMatchExpr) String() string { return "all" }

// AndExpr matches when both sides match
type AndExpr struct {
	left, right FilterExpr
}

func (e *AndExpr) Matches(rec model.Record) bool {
	return e.left.Matches(rec) && e.right.Matches(rec)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("and(%s, %s)", e.left, e.right)
}

// OrExpr matches when either side matches
type OrExpr struct {
	left, right FilterExpr
}

func (e *OrExpr) Matches(rec model.Record) bool {
	return e.left.Matches(rec) || e.right.Matches(rec)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("or(%s, %s)", e.left, e.right)
}

// NotExpr inverts an expression
type NotExpr struct {
	expr FilterExpr
}

func (e *NotExpr) Matches(rec model.Record) bool {
	return !e.expr.Matches(rec)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("not(%s)", e.expr)
}

// Filter returns the records of list matched by expr, keeping their order
func Filter(list model.List, expr FilterExpr) model.List {
	out := make(model.List, 0, len(list))
	for _, rec := range list {
		if expr.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}
