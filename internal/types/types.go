// Package types defines every cross-package data structure used by the changetree CLI.
package types

import "encoding/xml"

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatYAML = "yaml"
)

// SupportedFormats lists the accepted output formats.
var SupportedFormats = []string{FormatRaw, FormatJSON, FormatXML, FormatYAML}

// TreeOutputNode is the serializable form of one node of a change tree.
type TreeOutputNode struct {
	XMLName    xml.Name          `json:"-" xml:"node" yaml:"-"`
	Title      string            `json:"title" xml:"title" yaml:"title"`
	Path       string            `json:"path" xml:"path" yaml:"path"`
	VaultPath  string            `json:"vaultPath,omitempty" xml:"vaultPath,omitempty" yaml:"vaultPath,omitempty"`
	Type       string            `json:"type" xml:"type" yaml:"type"`
	Index      string            `json:"index,omitempty" xml:"index,omitempty" yaml:"index,omitempty"`
	WorkingDir string            `json:"workingDir,omitempty" xml:"workingDir,omitempty" yaml:"workingDir,omitempty"`
	From       string            `json:"from,omitempty" xml:"from,omitempty" yaml:"from,omitempty"`
	Children   []*TreeOutputNode `json:"children,omitempty" xml:"children>node,omitempty" yaml:"children,omitempty"`
}

// TreeOutput is the rendered change tree of one root: a repository or a path list.
type TreeOutput struct {
	XMLName xml.Name          `json:"-" xml:"tree" yaml:"-"`
	Root    string            `json:"root" xml:"root,attr" yaml:"root"`
	Source  string            `json:"source,omitempty" xml:"source,attr,omitempty" yaml:"source,omitempty"`
	Files   int               `json:"files" xml:"files,attr" yaml:"files"`
	Nodes   []*TreeOutputNode `json:"nodes" xml:"node" yaml:"nodes"`
}
