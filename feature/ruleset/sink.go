package ruleset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"ruleset-combiner/core/entity"
	"ruleset-combiner/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ManifestFile is the name of the asset manifest written next to jsons/.
const ManifestFile = "manifest.json"

// Sink receives the files of a combined ruleset. Names are slash-separated and relative
// to the ruleset root, e.g. "jsons/Units.json".
type Sink interface {
	Write(ctx context.Context, name string, data []byte) error
}

// DirSink writes files below a directory.
type DirSink struct {
	root string
}

// NewDirSink creates a DirSink.
func NewDirSink(root string) *DirSink {
	return &DirSink{root: root}
}

// Write implements Sink.
func (s *DirSink) Write(_ context.Context, name string, data []byte) error {
	target := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}

// BucketSink uploads files to object storage below a key prefix.
type BucketSink struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketSink creates a BucketSink.
func NewBucketSink(client storage.Client, bucket, prefix string) *BucketSink {
	return &BucketSink{client: client, bucket: bucket, prefix: prefix}
}

// Write implements Sink.
func (s *BucketSink) Write(ctx context.Context, name string, data []byte) error {
	key := storage.ObjectKey(s.prefix, name)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(name),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".json":
		return "application/json"
	case ".png":
		return "image/png"
	case ".md":
		return "text/markdown"
	default:
		return "application/octet-stream"
	}
}

// Encode renders v as tab-indented JSON without HTML escaping.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Files renders a ruleset into its output files, keyed by slash-separated name.
// Merged kinds list the source entries first (when collected) and the consolidated
// records after them.
func Files(rs *Ruleset) (map[string][]byte, error) {
	contents := make(map[string][]any, len(rs.Sources)+len(entity.Kinds))
	for name, list := range rs.Sources {
		contents[name] = append([]any(nil), list...)
	}
	for _, kind := range entity.Kinds {
		for _, e := range rs.Records(kind) {
			contents[kind.FileName()] = append(contents[kind.FileName()], e)
		}
	}

	files := make(map[string][]byte, len(contents)+2)
	for name, list := range contents {
		if len(list) == 0 {
			continue
		}
		data, err := Encode(list)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", name, err)
		}
		files[path.Join(jsonsDir, name)] = data
	}

	data, err := Encode(rs.GlobalUniques)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", globalUniquesFile, err)
	}
	files[path.Join(jsonsDir, globalUniquesFile)] = data

	manifest := rs.Manifest
	if manifest == nil {
		manifest = Manifest{}
	}
	if files[ManifestFile], err = Encode(manifest); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", ManifestFile, err)
	}
	return files, nil
}

// WriteRuleset renders a ruleset and hands every file to the sink in name order.
func WriteRuleset(ctx context.Context, sink Sink, rs *Ruleset, logger *zap.Logger) error {
	files, err := Files(rs)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := sink.Write(ctx, name, files[name]); err != nil {
			return err
		}
		logger.Debug("Wrote ruleset file", zap.String("file", name), zap.Int("bytes", len(files[name])))
	}
	logger.Info("Wrote ruleset", zap.String("run_id", rs.RunID), zap.Int("files", len(names)))
	return nil
}

// PublishDir hands every file below dir to the sink, keyed by its slash-separated path
// relative to dir, and returns the names written.
func PublishDir(ctx context.Context, sink Sink, dir string, logger *zap.Logger) ([]string, error) {
	var published []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		name := filepath.ToSlash(rel)
		if err := sink.Write(ctx, name, data); err != nil {
			return err
		}
		logger.Debug("Published file", zap.String("file", name), zap.Int("bytes", len(data)))
		published = append(published, name)
		return nil
	})
	return published, err
}
