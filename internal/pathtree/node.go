// Package pathtree groups slash separated paths into a collapsed, sorted directory tree.
package pathtree

import "strings"

// PathSeparator separates path segments in record paths.
const PathSeparator = "/"

// Record is a single input item carrying an opaque payload and its path.
type Record[T any] struct {
	Path string
	Data T
}

// Node is either a *Directory or a *Leaf.
type Node[T any] interface {
	// NodeTitle returns the label relative to the parent node.
	NodeTitle() string
	// NodePath returns the full path from the root to this node.
	NodePath() string
	// IsLeaf reports whether the node wraps a record.
	IsLeaf() bool

	sealed()
}

// Directory groups the nodes sharing a path prefix. After simplification
// Title may contain separators when a directory chain was collapsed.
type Directory[T any] struct {
	Title    string
	Path     string
	Children []Node[T]
}

// Leaf wraps exactly one input record.
type Leaf[T any] struct {
	Title string
	Path  string
	Data  T
}

func (directory *Directory[T]) NodeTitle() string { return directory.Title }
func (directory *Directory[T]) NodePath() string  { return directory.Path }
func (directory *Directory[T]) IsLeaf() bool      { return false }
func (directory *Directory[T]) sealed()           {}

func (leaf *Leaf[T]) NodeTitle() string { return leaf.Title }
func (leaf *Leaf[T]) NodePath() string  { return leaf.Path }
func (leaf *Leaf[T]) IsLeaf() bool      { return true }
func (leaf *Leaf[T]) sealed()           {}

// Depth returns the number of segments in path.
func Depth(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, PathSeparator) + 1
}

// Walk visits nodes depth first in order. The visitor receives the node and
// its depth below the root, starting at zero. Returning false skips the
// children of a directory.
func Walk[T any](nodes []Node[T], visit func(node Node[T], depth int) bool) {
	walkLevel(nodes, 0, visit)
}

func walkLevel[T any](nodes []Node[T], depth int, visit func(node Node[T], depth int) bool) {
	for _, node := range nodes {
		if !visit(node, depth) {
			continue
		}
		if directory, isDirectory := node.(*Directory[T]); isDirectory {
			walkLevel(directory.Children, depth+1, visit)
		}
	}
}

// Leaves returns every leaf of the tree in rendering order.
func Leaves[T any](nodes []Node[T]) []*Leaf[T] {
	var leaves []*Leaf[T]
	Walk(nodes, func(node Node[T], _ int) bool {
		if leaf, isLeaf := node.(*Leaf[T]); isLeaf {
			leaves = append(leaves, leaf)
		}
		return true
	})
	return leaves
}
