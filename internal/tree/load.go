package tree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a tree file.
type Format string

const (
	FormatAuto Format = "auto"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. The empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("tree: unknown format %q (want auto, yaml or json)", s)
}

// Validation errors returned by Validate, wrapped with the offending ID.
var (
	ErrEmptyID      = errors.New("node id is empty")
	ErrDuplicateID  = errors.New("duplicate node id")
	ErrUnknownKind  = errors.New("unknown node kind")
	ErrLeafChildren = errors.New("leaf node has children")
	ErrLeafExpanded = errors.New("leaf node is marked expanded")
	ErrNilNode      = errors.New("nil node")
)

// Load reads and validates a forest from path. FormatAuto picks the decoder
// from the file extension, defaulting to YAML.
func Load(path string, format Format) ([]*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tree: reading %s: %w", path, err)
	}
	if format == FormatAuto || format == "" {
		format = formatFromExt(path)
	}
	roots, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("tree: parsing %s: %w", path, err)
	}
	return roots, nil
}

func formatFromExt(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes a forest, fills in default kinds and validates it.
// Unknown fields are rejected. Empty input yields an empty forest.
func Parse(data []byte, format Format) ([]*Node, error) {
	var roots []*Node
	if len(bytes.TrimSpace(data)) > 0 {
		var err error
		switch format {
		case FormatJSON:
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			err = dec.Decode(&roots)
		default:
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			err = dec.Decode(&roots)
			// Comment-only documents decode to EOF.
			if errors.Is(err, io.EOF) {
				err = nil
			}
		}
		if err != nil {
			return nil, err
		}
	}
	normalize(roots)
	if err := Validate(roots); err != nil {
		return nil, err
	}
	return roots, nil
}

// normalize infers the kind of nodes that omit it: nodes with children are groups.
func normalize(nodes []*Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.Kind == "" {
			if len(n.Children) > 0 {
				n.Kind = KindGroup
			} else {
				n.Kind = KindLeaf
			}
		}
		normalize(n.Children)
	}
}

// Validate checks the preconditions the engine relies on but never checks itself.
func Validate(roots []*Node) error {
	seen := make(map[string]bool)
	var check func(nodes []*Node) error
	check = func(nodes []*Node) error {
		for _, n := range nodes {
			if n == nil {
				return ErrNilNode
			}
			if n.ID == "" {
				return fmt.Errorf("%w (label %q)", ErrEmptyID, n.Label)
			}
			if seen[n.ID] {
				return fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
			}
			seen[n.ID] = true
			switch n.Kind {
			case KindGroup:
			case KindLeaf:
				if len(n.Children) > 0 {
					return fmt.Errorf("%w: %s", ErrLeafChildren, n.ID)
				}
				if n.Expanded {
					return fmt.Errorf("%w: %s", ErrLeafExpanded, n.ID)
				}
			default:
				return fmt.Errorf("%w %q: %s", ErrUnknownKind, n.Kind, n.ID)
			}
			if err := check(n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return check(roots)
}
