package rule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// anyTag is a single ordinary tag. Relation (<@...>) and dependency
	// (<#...>) markers are not ordinary tags.
	anyTag = `<[^<>@#][^<>]*>`

	// a pattern must cover the whole leading tag sequence
	tagEnd = `(?:<@|<#|$)`
)

// ErrBadAtom is wrapped by the errors of CompileTags.
var ErrBadAtom = errors.New("unrecognized tag atom")

// TagPattern is a compiled dotted tag specification, f.ex.
//
//	det.?.*
//
// matches a tag string starting with <det>, followed by exactly one tag and
// then any number of tags, up to the relation marker, the dependency marker
// or the end of the string.
//
// Atoms:
//
//	name  the literal tag <name>
//	?     exactly one tag
//	+     one or more tags
//	*     zero or more tags
type TagPattern struct {
	spec string
	re   *regexp.Regexp
}

// CompileTags compiles a dotted tag specification.
func CompileTags(spec string) (*TagPattern, error) {
	var b strings.Builder
	b.WriteString("^")

	for _, atom := range strings.Split(spec, ".") {
		switch atom {
		case "?":
			b.WriteString("(?:" + anyTag + ")")
		case "+":
			b.WriteString("(?:" + anyTag + ")+")
		case "*":
			b.WriteString("(?:" + anyTag + ")*")
		default:
			if atom == "" || strings.ContainsAny(atom, "<>") {
				return nil, fmt.Errorf("%w %q in %q", ErrBadAtom, atom, spec)
			}
			b.WriteString("<" + regexp.QuoteMeta(atom) + ">")
		}
	}

	b.WriteString(tagEnd)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("tag pattern %q: %w", spec, err)
	}

	return &TagPattern{spec: spec, re: re}, nil
}

// Match reports whether the tag string tags starts with a complete tag
// sequence described by the pattern.
func (p *TagPattern) Match(tags string) bool {
	return p.re.MatchString(tags)
}

// String returns the dotted specification.
func (p *TagPattern) String() string {
	return p.spec
}
