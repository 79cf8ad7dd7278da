package pathtree_test

import (
	"errors"
	"testing"

	"github.com/temirov/changetree/internal/pathtree"
)

func TestSimplifyCollapsesHandBuiltChain(t *testing.T) {
	leaf := &pathtree.Leaf[string]{Title: "z.md", Path: "x/y/w/z.md", Data: "payload:x/y/w/z.md"}
	tree := []pathtree.Node[string]{
		&pathtree.Directory[string]{Title: "x", Path: "x", Children: []pathtree.Node[string]{
			&pathtree.Directory[string]{Title: "y", Path: "x/y", Children: []pathtree.Node[string]{
				&pathtree.Directory[string]{Title: "w", Path: "x/y/w", Children: []pathtree.Node[string]{leaf}},
			}},
		}},
	}

	simplified, simplifyError := pathtree.Simplify(tree)
	if simplifyError != nil {
		t.Fatalf("Simplify error: %v", simplifyError)
	}
	assertTree(t, simplified, []expectedNode{
		{title: "x/y/w", path: "x/y/w", children: []expectedNode{
			{title: "z.md", path: "x/y/w/z.md", leaf: true},
		}},
	})
	if &simplified[0] != &tree[0] {
		t.Fatalf("expected Simplify to return the same slice")
	}
}

func TestSimplifyDetectsCycles(t *testing.T) {
	selfReferencing := &pathtree.Directory[string]{Title: "loop", Path: "loop"}
	selfReferencing.Children = []pathtree.Node[string]{selfReferencing}

	siblingCycle := &pathtree.Directory[string]{Title: "a", Path: "a"}
	siblingCycle.Children = []pathtree.Node[string]{
		siblingCycle,
		&pathtree.Leaf[string]{Title: "b.md", Path: "a/b.md"},
	}

	testCases := []struct {
		name string
		tree []pathtree.Node[string]
	}{
		{name: "single_child_cycle", tree: []pathtree.Node[string]{selfReferencing}},
		{name: "cycle_among_siblings", tree: []pathtree.Node[string]{siblingCycle}},
		{name: "nil_child", tree: []pathtree.Node[string]{nil}},
		{name: "nil_directory_pointer", tree: []pathtree.Node[string]{(*pathtree.Directory[string])(nil)}},
		{name: "nil_leaf_pointer", tree: []pathtree.Node[string]{(*pathtree.Leaf[string])(nil)}},
		{name: "nil_pointer_below_directory", tree: []pathtree.Node[string]{
			&pathtree.Directory[string]{Title: "a", Path: "a", Children: []pathtree.Node[string]{
				(*pathtree.Leaf[string])(nil),
				&pathtree.Leaf[string]{Title: "b.md", Path: "a/b.md"},
			}},
		}},
		{name: "nil_directory_pointer_in_chain", tree: []pathtree.Node[string]{
			&pathtree.Directory[string]{Title: "a", Path: "a", Children: []pathtree.Node[string]{
				(*pathtree.Directory[string])(nil),
			}},
		}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, simplifyError := pathtree.Simplify(testCase.tree)
			if !errors.Is(simplifyError, pathtree.ErrStructuralInvariant) {
				t.Fatalf("expected ErrStructuralInvariant, got %v", simplifyError)
			}
		})
	}
}

func TestWalkSkipsChildrenWhenVisitorDeclines(t *testing.T) {
	tree, buildError := pathtree.Build(recordsFromPaths("a/1.md", "a/2.md", "b.md"))
	if buildError != nil {
		t.Fatalf("Build error: %v", buildError)
	}
	var visited []string
	pathtree.Walk(tree, func(node pathtree.Node[string], _ int) bool {
		visited = append(visited, node.NodePath())
		return node.IsLeaf()
	})
	expected := []string{"a", "b.md"}
	if len(visited) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, visited)
	}
	for index := range expected {
		if visited[index] != expected[index] {
			t.Fatalf("expected %v, got %v", expected, visited)
		}
	}
}
