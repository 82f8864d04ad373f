package rule

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultWeight    = 1.0
	DefaultDirection = LeftToRight
)

// ConfigError is a defect of the rule file. Pair is the 1-based position of
// the offending <pair>, 0 if the error is not about a single pair.
type ConfigError struct {
	Pair int
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Pair == 0 {
		return fmt.Sprintf("rule file: %v", e.Err)
	}
	return fmt.Sprintf("rule file: pair %d: %v", e.Pair, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// xmlRules is the rule file document. The root element name is free.
type xmlRules struct {
	Pairs []xmlPair `xml:"pair"`
}

type xmlPair struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Nodes []xmlNode  `xml:",any"`
}

type xmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
}

func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Load parses a rule file:
//
//	<rules>
//	  <pair weight="1.0" order="LR">
//	    <node tags="det.*"/>
//	    <node tags="n.*" parent="yes"/>
//	  </pair>
//	</rules>
func Load(r io.Reader) (Set, error) {
	var doc xmlRules
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("XML decoding error: %w", err)}
	}

	set := make(Set, 0, len(doc.Pairs))
	for i, p := range doc.Pairs {
		or, err := compilePair(p)
		if err != nil {
			return nil, &ConfigError{Pair: i + 1, Err: err}
		}

		set = append(set, or)
	}

	// TODO: rules could be sorted by specificity once scoring honours rule order
	return set, nil
}

func compilePair(p xmlPair) (OrderRule, error) {
	if len(p.Nodes) != 2 {
		return OrderRule{}, fmt.Errorf("<pair> must have exactly 2 children, has %d", len(p.Nodes))
	}

	first, firstParent, err := compileNode(p.Nodes[0])
	if err != nil {
		return OrderRule{}, err
	}

	second, secondParent, err := compileNode(p.Nodes[1])
	if err != nil {
		return OrderRule{}, err
	}

	or := OrderRule{
		First:     first,
		Second:    second,
		Weight:    DefaultWeight,
		Direction: DefaultDirection,
	}

	// the first node wins when both declare parent="yes"
	switch {
	case firstParent:
		or.Role = FirstIsParent
	case secondParent:
		or.Role = SecondIsParent
	default:
		or.Role = Siblings
	}

	if w, ok := attr(p.Attrs, "weight"); ok {
		weight, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
		if err != nil {
			return OrderRule{}, fmt.Errorf("bad weight %q: %w", w, err)
		}

		if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
			return OrderRule{}, fmt.Errorf("bad weight %q: must be finite and non-negative", w)
		}

		or.Weight = weight
	}

	if o, ok := attr(p.Attrs, "order"); ok {
		switch o {
		case "LR":
			or.Direction = LeftToRight
		case "RL":
			or.Direction = RightToLeft
		default:
			return OrderRule{}, fmt.Errorf("bad order %q: allowed values are LR, RL", o)
		}
	}

	return or, nil
}

func compileNode(n xmlNode) (NodePattern, bool, error) {
	var np NodePattern

	if v, ok := attr(n.Attrs, "lemma"); ok {
		np.Lemma = &v
	}

	if v, ok := attr(n.Attrs, "tags"); ok {
		tp, err := CompileTags(v)
		if err != nil {
			return NodePattern{}, false, err
		}
		np.Tags = tp
	}

	if v, ok := attr(n.Attrs, "rel"); ok {
		np.Rel = &v
	}

	isParent := false
	if v, ok := attr(n.Attrs, "parent"); ok {
		switch strings.ToLower(v) {
		case "yes":
			isParent = true
		case "no":
		default:
			return NodePattern{}, false, fmt.Errorf("bad parent %q: allowed values are yes, no", v)
		}
	}

	return np, isParent, nil
}
