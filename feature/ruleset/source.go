package ruleset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ruleset-combiner/core/entity"

	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
)

const (
	jsonsDir          = "jsons"
	imagesDir         = "Images"
	modOptionsFile    = "ModOptions.json"
	globalUniquesFile = "GlobalUniques.json"
)

// SourceSet is one mod: its name and its ruleset files as plain JSON.
type SourceSet struct {
	Name string
	// Files maps a file name (e.g. "Units.json") to its content with comments and
	// trailing commas removed.
	Files map[string][]byte
}

// NewSourceSet builds a SourceSet from raw, possibly commented, file contents.
func NewSourceSet(name string, raw map[string][]byte) SourceSet {
	files := make(map[string][]byte, len(raw))
	for fileName, data := range raw {
		files[fileName] = jsonc.ToJSON(data)
	}
	return SourceSet{Name: name, Files: files}
}

// FileNames returns the file names in sorted order.
func (s SourceSet) FileNames() []string {
	names := make([]string, 0, len(s.Files))
	for n := range s.Files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Entities decodes the file holding entities of the given kind.
// A set without that file yields nothing.
func (s SourceSet) Entities(kind entity.Kind) ([]entity.Entity, error) {
	data, ok := s.Files[kind.FileName()]
	if !ok {
		return nil, nil
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s of %s: %w", kind.FileName(), s.Name, err)
	}
	out := make([]entity.Entity, len(raw))
	for i, m := range raw {
		out[i] = entity.Entity(m)
	}
	return out, nil
}

// List decodes a file holding a JSON array.
func (s SourceSet) List(fileName string) ([]any, bool, error) {
	data, ok := s.Files[fileName]
	if !ok {
		return nil, false, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, true, fmt.Errorf("decoding %s of %s: %w", fileName, s.Name, err)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, true, fmt.Errorf("decoding %s of %s: expected an array, got %T", fileName, s.Name, v)
	}
	return list, true, nil
}

// Object decodes a file holding a single JSON object.
func (s SourceSet) Object(fileName string) (entity.Entity, bool, error) {
	data, ok := s.Files[fileName]
	if !ok {
		return nil, false, nil
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, true, fmt.Errorf("decoding %s of %s: %w", fileName, s.Name, err)
	}
	return entity.Entity(obj), true, nil
}

// SourceReader yields the source sets to combine.
type SourceReader interface {
	Read(ctx context.Context) ([]SourceSet, error)
}

// DirReader reads source sets from a directory: every subdirectory with a jsons/
// folder is a set named after the subdirectory.
type DirReader struct {
	root   string
	logger *zap.Logger
}

// NewDirReader creates a DirReader.
func NewDirReader(root string, logger *zap.Logger) *DirReader {
	return &DirReader{root: root, logger: logger}
}

// Read implements SourceReader. Sets are returned sorted by name.
func (r *DirReader) Read(ctx context.Context) ([]SourceSet, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var sets []SourceSet
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() {
			continue
		}
		set, ok, err := ReadSourceSet(filepath.Join(r.root, e.Name()))
		if err != nil {
			return nil, err
		}
		if !ok {
			r.logger.Debug("Skipping directory without jsons", zap.String("source_set", e.Name()))
			continue
		}
		r.logger.Debug("Read source set", zap.String("source_set", set.Name), zap.Int("files", len(set.Files)))
		sets = append(sets, set)
	}

	sort.Slice(sets, func(i, j int) bool { return sets[i].Name < sets[j].Name })
	return sets, nil
}

// ReadSourceSet reads the jsons/ folder of one mod directory.
// ModOptions.json and non-JSON files are skipped.
func ReadSourceSet(dir string) (SourceSet, bool, error) {
	jsonDir := filepath.Join(dir, jsonsDir)
	entries, err := os.ReadDir(jsonDir)
	if os.IsNotExist(err) {
		return SourceSet{}, false, nil
	}
	if err != nil {
		return SourceSet{}, false, fmt.Errorf("reading %s: %w", jsonDir, err)
	}

	raw := make(map[string][]byte)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == modOptionsFile || !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(jsonDir, name))
		if err != nil {
			return SourceSet{}, false, fmt.Errorf("reading %s: %w", name, err)
		}
		raw[name] = data
	}
	return NewSourceSet(filepath.Base(dir), raw), true, nil
}
