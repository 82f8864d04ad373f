package rule

import (
	"strings"

	sent "github.com/mr-martian/ap-ud-linearize/sentence"
)

// Role is the structural relationship a rule requires between the two
// members of a candidate pair.
type Role int

const (
	// Siblings: both units have the same head. Two roots are siblings.
	Siblings Role = iota
	// FirstIsParent: the first unit is the head of the second.
	FirstIsParent
	// SecondIsParent: the second unit is the head of the first.
	SecondIsParent
)

func (r Role) String() string {
	switch r {
	case FirstIsParent:
		return "first-is-parent"
	case SecondIsParent:
		return "second-is-parent"
	default:
		return "siblings"
	}
}

// Direction is the preferred order of the pair.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "RL"
	}
	return "LR"
}

// NodePattern matches a single unit. Nil fields match anything.
type NodePattern struct {
	Lemma *string
	Tags  *TagPattern
	Rel   *string
}

// Match reports whether every set field of the pattern matches lu.
func (p NodePattern) Match(lu sent.LexicalUnit) bool {
	if p.Lemma != nil && *p.Lemma != lu.Lemma {
		return false
	}

	if p.Rel != nil && (!lu.HasRel || *p.Rel != lu.Rel) {
		return false
	}

	if p.Tags != nil && !p.Tags.Match(lu.Tags) {
		return false
	}

	return true
}

func (p NodePattern) String() string {
	sl := []string{}
	if p.Lemma != nil {
		sl = append(sl, "lemma="+*p.Lemma)
	}

	if p.Tags != nil {
		sl = append(sl, "tags="+p.Tags.String())
	}

	if p.Rel != nil {
		sl = append(sl, "rel="+*p.Rel)
	}

	if len(sl) == 0 {
		return "*"
	}

	return strings.Join(sl, ",")
}

// OrderRule prefers an order between two units matched by First and Second.
// It is not modified after construction and can be shared between goroutines.
type OrderRule struct {
	First  NodePattern
	Second NodePattern
	Role   Role

	// Weight is finite and non-negative, 1.0 by default
	Weight    float64
	Direction Direction
}

// Qualifies reports whether the dependency structure of the pair (a, b) is
// the one required by the rule role.
func (r OrderRule) Qualifies(a, b sent.LexicalUnit) bool {
	switch r.Role {
	case FirstIsParent:
		return a.Index == b.Parent
	case SecondIsParent:
		return a.Parent == b.Index
	default:
		return a.Parent == b.Parent
	}
}

// Signed returns the contribution of the rule to a matched pair.
func (r OrderRule) Signed() float64 {
	if r.Direction == RightToLeft {
		return -r.Weight
	}
	return r.Weight
}

// Set is the ordered list of rules of a rule file. The order does not change
// the scores.
type Set []OrderRule
