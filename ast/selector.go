package ast

// Combinator joins two simple selector sequences inside a Selector.
type Combinator int

const (
	// Descendant is the whitespace combinator: "a b".
	Descendant Combinator = iota
	// Child is ">".
	Child
	// AdjacentSibling is "+".
	AdjacentSibling
	// GeneralSibling is "~".
	GeneralSibling
)

func (c Combinator) String() string {
	switch c {
	case Descendant:
		return " "
	case Child:
		return ">"
	case AdjacentSibling:
		return "+"
	case GeneralSibling:
		return "~"
	default:
		return "?"
	}
}

// Selector is a chain of simple selector sequences joined by combinators:
// Sequences[0] Combinators[0] Sequences[1] Combinators[1] Sequences[2] ...
// len(Combinators) == len(Sequences)-1, and Sequences is never empty.
type Selector struct {
	Sequences  []*SimpleSelectorSequence
	Combinators []Combinator
	Position   Position
}

func (s *Selector) Pos() Position { return s.Position }

// HeadKind distinguishes the three forms a sequence's head may take.
type HeadKind int

const (
	// HeadNone means the sequence has no explicit head (tail-only, e.g. ".foo").
	HeadNone HeadKind = iota
	HeadType
	HeadUniversal
	HeadAncestor // "&"
)

// SimpleSelectorSequence is an optional head plus an ordered list of tails.
type SimpleSelectorSequence struct {
	HeadKind HeadKind
	HeadName string // type name, only meaningful when HeadKind == HeadType
	Tail     []SelectorTail
	Position Position
}

func (s *SimpleSelectorSequence) Pos() Position { return s.Position }

// SelectorTail is one of IDSelector, ClassSelector, AttributeSelector,
// PseudoClassSelector, PseudoElementSelector, or NegationSelector.
type SelectorTail interface {
	Node
	tailNode()
}

type IDSelector struct {
	Name     string
	Position Position
}

func (s *IDSelector) Pos() Position { return s.Position }
func (s *IDSelector) tailNode()     {}

type ClassSelector struct {
	Name     string
	Position Position
}

func (s *ClassSelector) Pos() Position { return s.Position }
func (s *ClassSelector) tailNode()     {}

// AttrMatchOp enumerates the six attribute-match operators.
type AttrMatchOp int

const (
	AttrExists AttrMatchOp = iota // "[attr]", no operator, Value is empty
	AttrEquals                    // =
	AttrIncludes                  // ~=
	AttrDashMatch                 // |=
	AttrPrefixMatch                // ^=
	AttrSuffixMatch                // $=
	AttrSubstringMatch              // *=
)

type AttributeSelector struct {
	Name     string
	Op       AttrMatchOp
	Value    string // identifier or unescaped string payload; ignored when Op == AttrExists
	Position Position
}

func (s *AttributeSelector) Pos() Position { return s.Position }
func (s *AttributeSelector) tailNode()     {}

type PseudoClassSelector struct {
	Name      string
	Arguments string // raw text inside ":name(...)"; empty when no parens
	Position  Position
}

func (s *PseudoClassSelector) Pos() Position { return s.Position }
func (s *PseudoClassSelector) tailNode()     {}

type PseudoElementSelector struct {
	Name     string
	Position Position
}

func (s *PseudoElementSelector) Pos() Position { return s.Position }
func (s *PseudoElementSelector) tailNode()     {}

// NegationSelector is ":not(X)" where X is a single simple selector sequence.
type NegationSelector struct {
	Argument *SimpleSelectorSequence
	Position Position
}

func (s *NegationSelector) Pos() Position { return s.Position }
func (s *NegationSelector) tailNode()     {}

// LegacyPseudoElements is the hard-coded CSS2.1 set that counts as a
// pseudo-element even when written with a single colon, matching
// cssypy's PSEUDO_ELEMENTS_LVL1 table.
var LegacyPseudoElements = map[string]bool{
	"first-line":   true,
	"first-letter": true,
	"before":       true,
	"after":        true,
}
