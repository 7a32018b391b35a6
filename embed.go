// Package treenav provides the bundled sample trees and an overlay filesystem
// that checks local disk first, falling back to the embedded samples.
package treenav

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/smileynet/treenav/internal/tree"
)

//go:embed samples/*.yaml samples/*.json
var rawSamples embed.FS

// Samples is the embedded samples filesystem with the "samples/" prefix stripped.
var Samples = mustSub(rawSamples, "samples")

// ErrUnknownSample is returned when no sample file matches a name.
var ErrUnknownSample = errors.New("unknown sample")

// sampleExts lists the extensions tried for a sample name, in order.
var sampleExts = []string{".yaml", ".yml", ".json"}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS returns a filesystem that checks localDir on disk first,
// falling back to the embedded filesystem for files not found locally.
func OverlayFS(localDir string, embedded fs.FS) fs.FS {
	return overlayFS{localDir: localDir, embedded: embedded}
}

type overlayFS struct {
	localDir string
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) || strings.Contains(name, `\`) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := os.Open(o.localDir + "/" + name)
	if err == nil {
		return f, nil
	}
	return o.embedded.Open(name)
}

// SampleNames lists the sample names in fsys, without extensions.
func SampleNames(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		ext := path.Ext(e.Name())
		for _, known := range sampleExts {
			if ext == known && !e.IsDir() {
				names = append(names, strings.TrimSuffix(e.Name(), ext))
				break
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadSample reads the sample called name from fsys.
func LoadSample(fsys fs.FS, name string) ([]*tree.Node, error) {
	for _, ext := range sampleExts {
		data, err := fs.ReadFile(fsys, name+ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", name, err)
		}
		format := tree.FormatYAML
		if ext == ".json" {
			format = tree.FormatJSON
		}
		roots, err := tree.Parse(data, format)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", name, err)
		}
		return roots, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownSample, name)
}
