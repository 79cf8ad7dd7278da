// Package output renders change trees as raw text, JSON, XML or YAML.
package output

import (
	"github.com/temirov/changetree/internal/changes"
	"github.com/temirov/changetree/internal/pathtree"
	"github.com/temirov/changetree/internal/types"
)

// ConversionOptions controls which optional fields are emitted. Leaves carry
// the vault path stored in their FileStatus; directories derive theirs from
// Locator.
type ConversionOptions struct {
	Locator           changes.Locator
	IncludeVaultPaths bool
}

// NewTreeOutput converts a built tree into its serializable form.
func NewTreeOutput(root string, source string, nodes []pathtree.Node[changes.FileStatus], options ConversionOptions) *types.TreeOutput {
	return &types.TreeOutput{
		Root:   root,
		Source: source,
		Files:  len(pathtree.Leaves(nodes)),
		Nodes:  convertNodes(nodes, options),
	}
}

func convertNodes(nodes []pathtree.Node[changes.FileStatus], options ConversionOptions) []*types.TreeOutputNode {
	converted := make([]*types.TreeOutputNode, 0, len(nodes))
	for _, node := range nodes {
		outputNode := &types.TreeOutputNode{
			Title: node.NodeTitle(),
			Path:  node.NodePath(),
		}
		switch typed := node.(type) {
		case *pathtree.Directory[changes.FileStatus]:
			outputNode.Type = types.NodeTypeDirectory
			if options.IncludeVaultPaths {
				outputNode.VaultPath = options.Locator.VaultPath(typed.Path)
			}
			outputNode.Children = convertNodes(typed.Children, options)
		case *pathtree.Leaf[changes.FileStatus]:
			outputNode.Type = types.NodeTypeFile
			if options.IncludeVaultPaths {
				outputNode.VaultPath = typed.Data.VaultPath
			}
			outputNode.Index = typed.Data.Index
			outputNode.WorkingDir = typed.Data.WorkingDir
			outputNode.From = typed.Data.From
		}
		converted = append(converted, outputNode)
	}
	return converted
}
