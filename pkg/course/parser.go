package course

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coursegraph/coursegraph/pkg/errors"
)

var (
	// courseTokenRE matches the catalog's identifier shape: a letter run,
	// optionally followed by digits (with at most one internal space) and an
	// optional letter suffix. Examples: "A", "CS201", "BIOCH 200", "MATH 31A".
	courseTokenRE = regexp.MustCompile(`^[A-Za-z]+(?: ?[0-9]+[A-Za-z]?)?$`)

	whitespaceRE = regexp.MustCompile(`\s+`)
	andSplitRE   = regexp.MustCompile(`(?i)\s+and\s+`)
	orSplitRE    = regexp.MustCompile(`(?i)\s+or\s+`)
	oneOfRE      = regexp.MustCompile(`(?i)^one of\s*[:\-]?\s*`)
	consentRE    = regexp.MustCompile(`(?i)\bconsent of\b`)
	danglingRE   = regexp.MustCompile(`(?i)[\s.;,]*\b(?:and|or)\b[\s.;,]*$`)
	labelRE      = regexp.MustCompile(`(?i)^prerequisites?\s*:\s*`)
)

// fillerWords are discarded from course tokens before shape matching.
// They appear in catalog prose ("the course CS201") without naming anything.
var fillerWords = map[string]struct{}{
	"the":     {},
	"course":  {},
	"courses": {},
}

// grammarWords are the connectives of the prerequisite grammar. A bare
// connective ("and" with nothing around it) is never a course ID, even
// though it matches the identifier shape.
var grammarWords = map[string]struct{}{
	"and": {},
	"or":  {},
	"one": {},
	"of":  {},
}

// MalformedError reports prerequisite text that doesn't match the supported
// grammar. Fragment is the smallest unparsable piece; Raw is the full input.
type MalformedError struct {
	Raw      string
	Fragment string
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: unsupported prerequisite fragment %q", errors.ErrCodeMalformedPrerequisite, e.Fragment)
}

// Code returns the error code for this error type.
func (e *MalformedError) Code() errors.Code {
	return errors.ErrCodeMalformedPrerequisite
}

// NormalizeID canonicalizes a course identifier: leading and trailing
// whitespace is trimmed and internal runs collapse to a single space.
// Case is preserved; course IDs are case-sensitive.
func NormalizeID(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ParseRequirement converts one course's raw prerequisite string into a
// requirement expression.
//
// Empty or whitespace-only input means "no prerequisites" and yields an empty
// [AllOf]. Otherwise the text is split on "and" into conjuncts, each conjunct
// is parsed for alternatives ("or", commas, slashes, a leading "one of"), and
// the results combine as AllOf over AnyOf/Leaf children. A single conjunct is
// returned directly without an AllOf wrapper.
//
// Input the grammar cannot express — parentheses, prose that is not a course
// token — fails with a [*MalformedError] naming the offending fragment.
// There are no partial results: the returned expression covers the entire
// recognized input or the parse fails.
func ParseRequirement(raw string) (Requirement, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return None(), nil
	}

	if strings.ContainsAny(text, "()") {
		return nil, &MalformedError{Raw: raw, Fragment: text}
	}

	text = labelRE.ReplaceAllString(text, "")

	// A trailing "consent of instructor" clause annotates the course rather
	// than naming one; everything from "consent of" onward is dropped.
	if loc := consentRE.FindStringIndex(text); loc != nil {
		// The cut can strand a connective ("... CS301; or "); drop it too.
		text = danglingRE.ReplaceAllString(text[:loc[0]], "")
	}

	text = NormalizeID(text)
	if text == "" {
		return None(), nil
	}

	var conjuncts []Requirement
	for _, part := range andSplitRE.Split(text, -1) {
		part = strings.Trim(part, " .;,")
		if part == "" {
			continue
		}
		expr, err := parseConjunct(raw, part)
		if err != nil {
			return nil, err
		}
		conjuncts = append(conjuncts, expr)
	}

	switch len(conjuncts) {
	case 0:
		return nil, &MalformedError{Raw: raw, Fragment: text}
	case 1:
		return conjuncts[0], nil
	default:
		return AllOf(conjuncts), nil
	}
}

// parseConjunct parses one "and"-separated segment into a Leaf or AnyOf.
// Alternatives are separated by "or", commas, semicolons, or slashes, with
// an optional leading "one of".
func parseConjunct(raw, segment string) (Requirement, error) {
	orig := segment
	segment = oneOfRE.ReplaceAllString(segment, "")
	segment = strings.ReplaceAll(segment, "/", ",")

	var leaves []Requirement
	seen := make(map[string]struct{})
	for _, alt := range orSplitRE.Split(segment, -1) {
		for _, piece := range strings.FieldsFunc(alt, func(r rune) bool { return r == ',' || r == ';' }) {
			token, ok, err := parseToken(raw, piece)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			leaves = append(leaves, Leaf{Course: token})
		}
	}

	switch len(leaves) {
	case 0:
		return nil, &MalformedError{Raw: raw, Fragment: strings.TrimSpace(orig)}
	case 1:
		return leaves[0], nil
	default:
		return AnyOf(leaves), nil
	}
}

// parseToken extracts a course ID from a single alternative. Filler words
// and trailing punctuation are discarded first. Returns ok=false for pieces
// that are empty after cleanup (e.g. a trailing comma), and a MalformedError
// for pieces that remain but don't match the identifier shape.
func parseToken(raw, piece string) (string, bool, error) {
	fields := strings.Fields(piece)
	kept := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,;:")
		if f == "" {
			continue
		}
		if _, filler := fillerWords[strings.ToLower(f)]; filler {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return "", false, nil
	}

	token := NormalizeID(strings.Join(kept, " "))
	if _, keyword := grammarWords[strings.ToLower(token)]; keyword {
		return "", false, &MalformedError{Raw: raw, Fragment: strings.TrimSpace(piece)}
	}
	if !courseTokenRE.MatchString(token) {
		return "", false, &MalformedError{Raw: raw, Fragment: strings.TrimSpace(piece)}
	}
	return token, true, nil
}
