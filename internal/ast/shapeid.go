package ast

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern matches a shape or member name: up to two leading
// underscores followed by an alphanumeric, or a leading letter, then any run
// of letters, digits, and underscores. Three or more leading underscores is
// not a valid start.
var identifierPattern = regexp.MustCompile(`^(_{0,2}[a-zA-Z0-9]|[a-zA-Z])[a-zA-Z0-9_]*$`)

// enumMemberPattern is the stricter rule for enum and intEnum member names:
// must start with a letter, no leading underscore or digit.
var enumMemberPattern = regexp.MustCompile(`^[a-zA-Z]+[a-zA-Z0-9_]*$`)

// LexicalError reports a string that does not satisfy an identifier grammar
// rule. Grammar names the rule ("identifier", "namespace", ...); Input is the
// offending string in full.
type LexicalError struct {
	Grammar string
	Input   string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%q is not a valid %s", e.Input, e.Grammar)
}

// Identifier is a validated shape or member name. Comparisons between
// identifiers are case-insensitive; use Lower for a comparison key.
type Identifier string

// ParseIdentifier validates s against the identifier grammar.
func ParseIdentifier(s string) (Identifier, error) {
	if !identifierPattern.MatchString(s) {
		return "", &LexicalError{Grammar: "identifier", Input: s}
	}
	return Identifier(s), nil
}

// Lower returns the case-insensitive comparison key for the identifier.
func (id Identifier) Lower() string { return strings.ToLower(string(id)) }

// EnumMemberIdentifier is a validated enum member name. Every
// EnumMemberIdentifier is also a valid Identifier; the reverse does not hold.
type EnumMemberIdentifier string

// ParseEnumMemberIdentifier validates s against the enum member grammar.
func ParseEnumMemberIdentifier(s string) (EnumMemberIdentifier, error) {
	if !enumMemberPattern.MatchString(s) {
		return "", &LexicalError{Grammar: "enum member identifier", Input: s}
	}
	return EnumMemberIdentifier(s), nil
}

// Namespace is a validated dot-separated sequence of identifiers.
type Namespace string

// ParseNamespace validates s as a namespace. An empty segment (leading,
// trailing, or doubled dot) fails.
func ParseNamespace(s string) (Namespace, error) {
	for _, segment := range strings.Split(s, ".") {
		if !identifierPattern.MatchString(segment) {
			return "", &LexicalError{Grammar: "namespace", Input: s}
		}
	}
	return Namespace(s), nil
}

// AbsoluteShapeID is a validated namespace-qualified shape name of the form
// "namespace#Name". It is the only form valid as a key in the top-level
// shapes mapping and as a reference target.
type AbsoluteShapeID string

// ParseAbsoluteShapeID validates s as an absolute shape ID. The string is
// split on the first '#' only, so a second '#' lands in the name part and
// fails the identifier rule.
func ParseAbsoluteShapeID(s string) (AbsoluteShapeID, error) {
	ns, name, ok := strings.Cut(s, "#")
	if !ok {
		return "", &LexicalError{Grammar: "absolute shape ID", Input: s}
	}
	if _, err := ParseNamespace(ns); err != nil {
		return "", &LexicalError{Grammar: "absolute shape ID", Input: s}
	}
	if _, err := ParseIdentifier(name); err != nil {
		return "", &LexicalError{Grammar: "absolute shape ID", Input: s}
	}
	return AbsoluteShapeID(s), nil
}

// Namespace returns the namespace part of the ID.
func (id AbsoluteShapeID) Namespace() Namespace {
	ns, _, _ := strings.Cut(string(id), "#")
	return Namespace(ns)
}

// Name returns the shape name part of the ID.
func (id AbsoluteShapeID) Name() Identifier {
	_, name, _ := strings.Cut(string(id), "#")
	return Identifier(name)
}

// RootShapeID is a validated shape ID without a member selector: either an
// absolute shape ID or a bare, locally-scoped identifier.
type RootShapeID string

// ParseRootShapeID validates s as a root shape ID.
func ParseRootShapeID(s string) (RootShapeID, error) {
	if _, err := ParseAbsoluteShapeID(s); err == nil {
		return RootShapeID(s), nil
	}
	if _, err := ParseIdentifier(s); err == nil {
		return RootShapeID(s), nil
	}
	return "", &LexicalError{Grammar: "root shape ID", Input: s}
}

// ShapeID is a validated shape ID, optionally carrying a "$member" selector.
type ShapeID string

// ParseShapeID validates s as a shape ID. The string is split on the first
// '$' only; the selector part must itself be a plain identifier, so a second
// '$' fails.
func ParseShapeID(s string) (ShapeID, error) {
	root, member, hasMember := strings.Cut(s, "$")
	if _, err := ParseRootShapeID(root); err != nil {
		return "", &LexicalError{Grammar: "shape ID", Input: s}
	}
	if hasMember {
		if _, err := ParseIdentifier(member); err != nil {
			return "", &LexicalError{Grammar: "shape ID", Input: s}
		}
	}
	return ShapeID(s), nil
}

// ShapeIDMember is a validated standalone member token of the form "$name".
// It is distinct from the member selector suffix of a ShapeID: it appears
// where a bare trait-key-suffix string is expected.
type ShapeIDMember string

// ParseShapeIDMember validates s as a standalone "$name" token.
func ParseShapeIDMember(s string) (ShapeIDMember, error) {
	rest, ok := strings.CutPrefix(s, "$")
	if !ok {
		return "", &LexicalError{Grammar: "shape ID member", Input: s}
	}
	if _, err := ParseIdentifier(rest); err != nil {
		return "", &LexicalError{Grammar: "shape ID member", Input: s}
	}
	return ShapeIDMember(s), nil
}
