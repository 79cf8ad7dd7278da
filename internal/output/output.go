package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/changetree/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader      = xml.Header
	xmlRootElement = "result"

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix     = "/"
	rawHeaderFormat     = "--- Change Tree: %s (%s%d %s) ---\n"
	rawSourceFormat     = "%s, "
	emptyTreeMessage    = "(no changes)\n"
	leafStatusFormat    = "%s [%s]"
	renamedFromFormat   = "%s <- %s"
	unsupportedFormat   = "unsupported output format %q"
	singularFileLabel   = "file"
	pluralFileLabel     = "files"
	xmlEncodeFailed     = "encode xml: %w"
	jsonEncodeFailed    = "encode json: %w"
	yamlEncodeFailed    = "encode yaml: %w"
	yamlIndentationSize = 2
)

// Render formats trees in the requested format. Trees keep their order.
func Render(format string, trees []*types.TreeOutput) (string, error) {
	switch format {
	case types.FormatRaw:
		return RenderRaw(trees), nil
	case types.FormatJSON:
		return RenderJSON(trees)
	case types.FormatXML:
		return RenderXML(trees)
	case types.FormatYAML:
		return RenderYAML(trees)
	default:
		return "", fmt.Errorf(unsupportedFormat, format)
	}
}

// RenderRaw draws every tree with box drawing connectors.
func RenderRaw(trees []*types.TreeOutput) string {
	var buffer bytes.Buffer
	for treeIndex, tree := range trees {
		if treeIndex > 0 {
			buffer.WriteString("\n")
		}
		sourceLabel := ""
		if tree.Source != "" {
			sourceLabel = fmt.Sprintf(rawSourceFormat, tree.Source)
		}
		fileLabel := pluralFileLabel
		if tree.Files == 1 {
			fileLabel = singularFileLabel
		}
		fmt.Fprintf(&buffer, rawHeaderFormat, tree.Root, sourceLabel, tree.Files, fileLabel)
		if len(tree.Nodes) == 0 {
			buffer.WriteString(emptyTreeMessage)
			continue
		}
		writeRawNodes(&buffer, tree.Nodes, "")
	}
	return buffer.String()
}

func writeRawNodes(buffer *bytes.Buffer, nodes []*types.TreeOutputNode, prefix string) {
	for index, node := range nodes {
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if index == len(nodes)-1 {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}
		buffer.WriteString(prefix + connector + rawLabel(node) + "\n")
		if node.Type == types.NodeTypeDirectory {
			writeRawNodes(buffer, node.Children, childPrefix)
		}
	}
}

func rawLabel(node *types.TreeOutputNode) string {
	if node.Type == types.NodeTypeDirectory {
		return node.Title + directorySuffix
	}
	label := node.Title
	if node.From != "" {
		label = fmt.Sprintf(renamedFromFormat, label, node.From)
	}
	if node.Index == "" && node.WorkingDir == "" {
		return label
	}
	code := padCode(node.Index) + padCode(node.WorkingDir)
	return fmt.Sprintf(leafStatusFormat, label, code)
}

func padCode(code string) string {
	if code == "" {
		return " "
	}
	return code
}

// RenderJSON marshals trees as an indented JSON array.
func RenderJSON(trees []*types.TreeOutput) (string, error) {
	if trees == nil {
		trees = []*types.TreeOutput{}
	}
	encoded, encodeError := json.MarshalIndent(trees, indentPrefix, indentSpacer)
	if encodeError != nil {
		return "", fmt.Errorf(jsonEncodeFailed, encodeError)
	}
	return string(encoded) + "\n", nil
}

// RenderXML marshals trees inside a <result> document.
func RenderXML(trees []*types.TreeOutput) (string, error) {
	wrapper := struct {
		XMLName xml.Name            `xml:""`
		Trees   []*types.TreeOutput `xml:"tree"`
	}{
		XMLName: xml.Name{Local: xmlRootElement},
		Trees:   trees,
	}
	encoded, encodeError := xml.MarshalIndent(wrapper, indentPrefix, indentSpacer)
	if encodeError != nil {
		return "", fmt.Errorf(xmlEncodeFailed, encodeError)
	}
	return xmlHeader + string(encoded) + "\n", nil
}

// RenderYAML marshals trees as a YAML sequence.
func RenderYAML(trees []*types.TreeOutput) (string, error) {
	if trees == nil {
		trees = []*types.TreeOutput{}
	}
	var builder strings.Builder
	encoder := yaml.NewEncoder(&builder)
	encoder.SetIndent(yamlIndentationSize)
	if encodeError := encoder.Encode(trees); encodeError != nil {
		return "", fmt.Errorf(yamlEncodeFailed, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return "", fmt.Errorf(yamlEncodeFailed, closeError)
	}
	return builder.String(), nil
}
