// Package solver implements a transforming tree walk that resolves
// variable references, folds constant expressions, and manages lexical
// scope across nested blocks. The namespace-stack-of-scope-stacks
// shape is grounded on titpetric/lessgo's parser.Stack (push/pop of
// map[string]ast.Value layers, top-to-bottom lookup), generalized into two
// levels: a namespace pushed per Stylesheet/ImportedStylesheet and a scope
// pushed per RuleSet.
package solver

import "github.com/csspp/csspp/ast"

// scope is one binding layer, pushed at each RuleSet.
type scope map[string]ast.Value

// namespace is a stack of scopes, pushed at each Stylesheet/ImportedStylesheet.
type namespace struct {
	scopes []scope
}

func newNamespace() *namespace {
	return &namespace{scopes: []scope{make(scope)}}
}

func (n *namespace) push() {
	n.scopes = append(n.scopes, make(scope))
}

func (n *namespace) pop() scope {
	top := n.scopes[len(n.scopes)-1]
	n.scopes = n.scopes[:len(n.scopes)-1]
	return top
}

func (n *namespace) top() scope {
	return n.scopes[len(n.scopes)-1]
}

func (n *namespace) bind(name string, v ast.Value) {
	n.top()[name] = v
}

// lookup walks the current namespace's scopes top-to-bottom, per spec
// §4.E's "innermost scope wins; on a miss, walk outward through scopes in
// the current namespace only."
func (n *namespace) lookup(name string) (ast.Value, bool) {
	for i := len(n.scopes) - 1; i >= 0; i-- {
		if v, ok := n.scopes[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// namespaceStack is the outer stack, pushed at each Stylesheet/ImportedStylesheet.
type namespaceStack struct {
	stack []*namespace
}

func (ns *namespaceStack) push() *namespace {
	n := newNamespace()
	ns.stack = append(ns.stack, n)
	return n
}

func (ns *namespaceStack) pop() *namespace {
	top := ns.stack[len(ns.stack)-1]
	ns.stack = ns.stack[:len(ns.stack)-1]
	return top
}

func (ns *namespaceStack) current() *namespace {
	return ns.stack[len(ns.stack)-1]
}
