package cst

import "github.com/yaklabco/exprcst/pkg/syntax"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(el Element) error

// Walk performs a pre-order traversal of the tree starting at root, visiting
// nodes and tokens. If walkFunc returns a non-nil error, the walk stops
// immediately and returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for _, child := range root.Children() {
		if node, ok := child.(*Node); ok {
			if err := Walk(node, walkFunc); err != nil {
				return err
			}
			continue
		}
		if err := walkFunc(child); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all elements matching the predicate, in pre-order.
func FindAll(root *Node, predicate func(el Element) bool) []Element {
	var result []Element

	//nolint:errcheck // the callback never fails
	Walk(root, func(el Element) error {
		if predicate(el) {
			result = append(result, el)
		}
		return nil
	})

	return result
}

// FindFirst returns the first element matching the predicate, or nil.
func FindFirst(root *Node, predicate func(el Element) bool) Element {
	var found Element

	//nolint:errcheck // errStopWalk is expected
	Walk(root, func(el Element) error {
		if predicate(el) {
			found = el
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the given kind.
func FindByKind(root *Node, kind syntax.Kind) []*Node {
	var result []*Node
	for _, el := range FindAll(root, func(el Element) bool {
		_, isNode := el.(*Node)
		return isNode && el.Kind() == kind
	}) {
		result = append(result, el.(*Node))
	}
	return result
}

var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
