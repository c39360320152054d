package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"featurepack/internal/features"
	"featurepack/pkg/logging"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const configExt = ".yml"

// DefaultReadConcurrency bounds the number of files read at once.
const DefaultReadConcurrency = 8

// FileStore reads an exported configuration directory (one <name>.yml file
// per configuration object) as the active configuration storage.
type FileStore struct {
	mu          sync.RWMutex
	dir         string
	concurrency int
	errors      *ConfigurationErrorCollection
}

// NewFileStore creates a store reading from dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:         dir,
		concurrency: DefaultReadConcurrency,
		errors:      NewConfigurationErrorCollection(),
	}
}

// WithConcurrency sets the number of parallel reads used by ReadMultiple.
func (fs *FileStore) WithConcurrency(n int) *FileStore {
	if n > 0 {
		fs.concurrency = n
	}
	return fs
}

// Dir returns the directory the store reads from.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// Errors returns the files skipped because they could not be parsed.
func (fs *FileStore) Errors() *ConfigurationErrorCollection {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	out := NewConfigurationErrorCollection()
	for _, e := range fs.errors.Errors {
		out.Add(e)
	}
	return out
}

// ListAll returns the names of every configuration object starting with
// prefix, sorted. A missing directory holds no configuration.
func (fs *FileStore) ListAll(prefix string) ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", fs.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != configExt {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), configExt)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Read parses the document called name.
func (fs *FileStore) Read(name string) (map[string]interface{}, error) {
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	path := fs.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, features.ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	doc := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewConfigurationErrorWithDetails(path, filepath.Base(path), CategoryConfig, ErrorTypeParse,
			"configuration file is not valid YAML", err.Error(), []string{"Re-export the configuration or fix the file by hand"})
	}
	return doc, nil
}

// ReadMultiple reads names concurrently. Missing documents are left out of the
// result; unparseable ones are recorded in Errors and skipped so that one bad
// file does not stop the rest of the export from loading.
func (fs *FileStore) ReadMultiple(names []string) (map[string]map[string]interface{}, error) {
	var (
		resMu sync.Mutex
		out   = make(map[string]map[string]interface{}, len(names))
	)

	g := new(errgroup.Group)
	g.SetLimit(fs.concurrency)
	for _, name := range names {
		g.Go(func() error {
			doc, err := fs.Read(name)
			if err != nil {
				var ce ConfigurationError
				switch {
				case errors.Is(err, features.ErrConfigNotFound):
					logging.Debug("Storage", "Configuration %s disappeared while loading", name)
					return nil
				case errors.As(err, &ce):
					logging.Warn("Storage", "Skipping %s: %s", name, ce.Details)
					fs.mu.Lock()
					fs.errors.Add(ce)
					fs.mu.Unlock()
					return nil
				default:
					return err
				}
			}
			resMu.Lock()
			out[name] = doc
			resMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.Info("Storage", "Loaded %d of %d configuration files from %s", len(out), len(names), fs.dir)
	return out, nil
}

func (fs *FileStore) path(name string) string {
	return filepath.Join(fs.dir, sanitizeFilename(name)+configExt)
}

// sanitizeFilename keeps a configuration name from escaping the directory.
// Dots are legal in configuration names and are kept.
func sanitizeFilename(name string) string {
	sanitized := name
	for _, c := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		sanitized = strings.ReplaceAll(sanitized, c, "_")
	}
	sanitized = strings.Trim(sanitized, " .")
	if sanitized == "" {
		sanitized = "unnamed"
	}
	return sanitized
}
