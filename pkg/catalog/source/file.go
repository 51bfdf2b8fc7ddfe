package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mosaic-hq/configurator/pkg/catalog"
	"mosaic-hq/configurator/pkg/catalog/parser"
)

// FileSource loads catalogs from a YAML file or from every .yaml/.yml file
// directly inside a directory.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the given file or directory path.
func NewFileSource(path string) (*FileSource, error) {
	if path == "" {
		return nil, fmt.Errorf("source: empty path")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("source: stat %s: %w", path, err)
	}
	return &FileSource{path: path}, nil
}

// Path returns the path the source reads from.
func (s *FileSource) Path() string { return s.path }

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) ([]*catalog.Descriptor, error) {
	files, err := s.catalogFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCatalogs, s.path)
	}

	descs := make([]*catalog.Descriptor, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("source: read %s: %w", file, err)
		}
		desc, err := parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("source: %s: %w", file, err)
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

func (s *FileSource) catalogFiles() ([]string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("source: stat %s: %w", s.path, err)
	}
	if !info.IsDir() {
		return []string{s.path}, nil
	}

	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("source: read dir %s: %w", s.path, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(s.path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
