/*
Package reader parses program text into expression trees.

	expr    := comment | atom | '(' <expr>* ')' | '(' <expr>+ '.' <expr> ')' | "'" <expr>
	comment := ';' <text to end of line>
	atom    := /[^\s()';]+/

The shorthand 'x reads as (quote x).
*/
package reader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parsec "github.com/prataprc/goparsec"

	"github.com/luthersystems/scopelisp/pkg/sexp"
	"github.com/luthersystems/scopelisp/pkg/symbol"
)

const (
	nodeInvalid nodeType = iota
	nodeAtom
	nodeList
	nodeQuote
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeAtom:    "ATOM",
	nodeList:    "LIST",
	nodeQuote:   "QUOTE",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

// node is the parse tree built by the grammar before cells are allocated.
type node struct {
	typ      nodeType
	text     string
	pos      int
	children []*node
	// dotted is set when the last child is the tail of an improper list.
	dotted bool
}

// SyntaxError is returned when the text is not a sequence of well formed
// expressions.
type SyntaxError struct {
	Name   string
	Offset int
	Msg    string
	// Unclosed is the number of parentheses left open at the end of input.
	Unclosed int
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%s[%d]: %s", err.Name, err.Offset, err.Msg)
}

// Incomplete returns true if err reports input that ended inside an
// unclosed list, such as a partially typed interactive expression.
func Incomplete(err error) bool {
	var serr *SyntaxError
	return errors.As(err, &serr) && serr.Unclosed > 0
}

// Reader converts text into values, interning atoms in a symbol table and
// allocating cells in an arena.
type Reader struct {
	table symbol.Table
	quote symbol.ID
	dot   string
	p     parsec.Parser
}

// New returns a Reader that interns atoms in table.
func New(table symbol.Table) *Reader {
	return &Reader{
		table: table,
		quote: table.Intern("quote"),
		dot:   ".",
		p:     newParsecParser(),
	}
}

// Read parses all of r and returns the program as a list of top-level
// expressions allocated in generation gen of a.
func (r *Reader) Read(name string, src io.Reader, a *sexp.Arena, gen sexp.Gen) (sexp.Value, error) {
	text, err := io.ReadAll(src)
	if err != nil {
		return sexp.Nil(), err
	}
	return r.ReadBytes(name, text, a, gen)
}

// ReadString is like Read but parses text.
func (r *Reader) ReadString(name string, text string, a *sexp.Arena, gen sexp.Gen) (sexp.Value, error) {
	return r.ReadBytes(name, []byte(text), a, gen)
}

// ReadBytes is like Read but parses text.
func (r *Reader) ReadBytes(name string, text []byte, a *sexp.Arena, gen sexp.Gen) (sexp.Value, error) {
	nodes, err := r.parse(name, text)
	if err != nil {
		return sexp.Nil(), err
	}
	b := a.NewListBuilder(gen)
	for _, n := range nodes {
		v, err := r.convert(name, n, a, gen)
		if err != nil {
			return sexp.Nil(), err
		}
		b.Append(v)
	}
	return b.List(), nil
}

func (r *Reader) parse(name string, text []byte) ([]*node, error) {
	var nodes []*node
	s := parsec.NewScanner(text)
	for {
		root, news := r.p(s)
		if root == nil {
			break
		}
		s = news
		// expr has no Nodify so each form arrives wrapped in a node list
		for _, x := range cleanParsecNodeList([]parsec.ParsecNode{root}) {
			if n, ok := x.(*node); ok {
				nodes = append(nodes, n)
			}
		}
	}
	cursor := s.GetCursor()
	rest := string(text[cursor:])
	if strings.TrimSpace(rest) != "" {
		return nil, syntaxError(name, cursor, rest)
	}
	return nodes, nil
}

func syntaxError(name string, offset int, rest string) *SyntaxError {
	err := &SyntaxError{Name: name, Offset: offset}
	for _, line := range strings.Split(rest, "\n") {
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		err.Unclosed += strings.Count(line, "(") - strings.Count(line, ")")
	}
	rest = strings.TrimSpace(rest)
	if len(rest) > 20 {
		rest = rest[:20] + "..."
	}
	switch {
	case err.Unclosed > 0:
		err.Msg = fmt.Sprintf("unmatched ( in %q", rest)
	case strings.HasPrefix(rest, ")"):
		err.Unclosed = 0
		err.Msg = "unexpected )"
	default:
		err.Unclosed = 0
		err.Msg = fmt.Sprintf("unexpected text %q", rest)
	}
	return err
}

func (r *Reader) convert(name string, n *node, a *sexp.Arena, gen sexp.Gen) (sexp.Value, error) {
	switch n.typ {
	case nodeAtom:
		if n.text == r.dot {
			return sexp.Nil(), &SyntaxError{Name: name, Offset: n.pos, Msg: "unexpected ."}
		}
		return sexp.Atom(r.table.Intern(n.text)), nil
	case nodeQuote:
		v, err := r.convert(name, n.children[0], a, gen)
		if err != nil {
			return sexp.Nil(), err
		}
		return a.List(gen, sexp.Atom(r.quote), v), nil
	case nodeList:
		items := n.children
		tail := sexp.Nil()
		if n.dotted {
			var err error
			tail, err = r.convert(name, items[len(items)-1], a, gen)
			if err != nil {
				return sexp.Nil(), err
			}
			items = items[:len(items)-1]
		}
		vals := make([]sexp.Value, len(items))
		for i := range items {
			var err error
			vals[i], err = r.convert(name, items[i], a, gen)
			if err != nil {
				return sexp.Nil(), err
			}
		}
		lis := tail
		for i := len(vals) - 1; i >= 0; i-- {
			lis = a.Cons(vals[i], lis, gen)
		}
		return lis, nil
	default:
		return sexp.Nil(), fmt.Errorf("invalid parse node: %v", n.typ)
	}
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	q := parsec.Atom("'", "QUOTE")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	atom := parsec.Token(`[^\s()';]+`, "ATOM")
	term := parsec.OrdChoice(astNode(nodeAtom), atom)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(astNode(nodeList), openP, exprList, closeP)
	qexpr := parsec.And(astNode(nodeQuote), q, &expr)
	expr = parsec.OrdChoice(nil, comment, term, sexpr, qexpr)
	return expr
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, cleanParsecNodeList(nodes))
	}
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	switch typ {
	case nodeAtom:
		term := nodes[0].(*parsec.Terminal)
		return &node{typ: nodeAtom, text: term.Value, pos: term.Position}
	case nodeList:
		n := &node{typ: nodeList}
		// the '(' and ')' terminals and any comments are dropped
		for _, c := range nodes {
			if c, ok := c.(*node); ok {
				n.children = append(n.children, c)
			}
		}
		if term, ok := nodes[0].(*parsec.Terminal); ok {
			n.pos = term.Position
		}
		return markDotted(n)
	case nodeQuote:
		n := &node{typ: nodeQuote}
		for _, c := range nodes {
			if c, ok := c.(*node); ok {
				n.children = append(n.children, c)
			}
		}
		if len(n.children) != 1 {
			// only a comment followed the quote; fail the alternative
			return nil
		}
		return n
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

// markDotted rewrites (a ... . z) so that z becomes the list's tail.  A dot
// anywhere else is left in place and rejected during conversion.
func markDotted(n *node) *node {
	k := len(n.children)
	if k < 3 {
		return n
	}
	dot := n.children[k-2]
	if dot.typ != nodeAtom || dot.text != "." {
		return n
	}
	n.children = append(n.children[:k-2], n.children[k-1])
	n.dotted = true
	return n
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch x := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(x)...)
		default:
			nodes = append(nodes, x)
		}
	}
	return nodes
}
