package pathtree

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	errorNotDeeperFormat = "%w: %q is nested under %q without a longer path"
	errorNilNodeFormat   = "%w: nil node under %q"
)

// Simplify collapses every directory whose only child is a directory into a
// single node with a combined title and orders siblings at every level:
// directories first, then titles by locale collation. The nodes are
// modified in place and the same slice is returned.
//
// Every child must have a strictly deeper path than its parent. Trees
// produced by Build always satisfy that; a tree violating it (for example a
// cyclic one) yields ErrStructuralInvariant.
func Simplify[T any](nodes []Node[T]) ([]Node[T], error) {
	simplifier := &treeSimplifier[T]{collator: collate.New(language.Und)}
	if simplifyError := simplifier.simplifyLevel(nodes, ""); simplifyError != nil {
		return nil, simplifyError
	}
	return nodes, nil
}

type treeSimplifier[T any] struct {
	collator *collate.Collator
}

func (simplifier *treeSimplifier[T]) simplifyLevel(nodes []Node[T], parentPath string) error {
	parentDepth := Depth(parentPath)
	for _, node := range nodes {
		if isNilNode[T](node) {
			return fmt.Errorf(errorNilNodeFormat, ErrStructuralInvariant, parentPath)
		}
		if Depth(node.NodePath()) <= parentDepth {
			return fmt.Errorf(errorNotDeeperFormat, ErrStructuralInvariant, node.NodePath(), parentPath)
		}
		directory, isDirectory := node.(*Directory[T])
		if !isDirectory {
			continue
		}
		if collapseError := collapseChain(directory); collapseError != nil {
			return collapseError
		}
		if childError := simplifier.simplifyLevel(directory.Children, directory.Path); childError != nil {
			return childError
		}
	}
	simplifier.sortSiblings(nodes)
	return nil
}

// isNilNode reports an untyped nil as well as a nil *Directory or *Leaf
// stored in the interface.
func isNilNode[T any](node Node[T]) bool {
	switch typed := node.(type) {
	case nil:
		return true
	case *Directory[T]:
		return typed == nil
	case *Leaf[T]:
		return typed == nil
	default:
		return false
	}
}

// collapseChain merges single subdirectory children into directory until a
// fixed point is reached. Each merge must adopt a strictly deeper path, which
// bounds the loop by the depth of the deepest path in the chain.
func collapseChain[T any](directory *Directory[T]) error {
	for len(directory.Children) == 1 {
		child, childIsDirectory := directory.Children[0].(*Directory[T])
		if !childIsDirectory {
			return nil
		}
		if child == nil {
			return fmt.Errorf(errorNilNodeFormat, ErrStructuralInvariant, directory.Path)
		}
		if Depth(child.Path) <= Depth(directory.Path) {
			return fmt.Errorf(errorNotDeeperFormat, ErrStructuralInvariant, child.Path, directory.Path)
		}
		directory.Title = directory.Title + PathSeparator + child.Title
		directory.Path = child.Path
		directory.Children = child.Children
	}
	return nil
}

func (simplifier *treeSimplifier[T]) sortSiblings(nodes []Node[T]) {
	sort.SliceStable(nodes, func(left, right int) bool {
		return simplifier.compare(nodes[left], nodes[right]) < 0
	})
}

// compare orders directories before leaves, then by collated title and
// finally by raw title bytes so that distinct titles never compare equal.
func (simplifier *treeSimplifier[T]) compare(left, right Node[T]) int {
	if left.IsLeaf() != right.IsLeaf() {
		if left.IsLeaf() {
			return 1
		}
		return -1
	}
	if collated := simplifier.collator.CompareString(left.NodeTitle(), right.NodeTitle()); collated != 0 {
		return collated
	}
	return strings.Compare(left.NodeTitle(), right.NodeTitle())
}
