package extension

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"featurepack/pkg/logging"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	infoSuffix     = ".info.yml"
	featuresSuffix = ".features.yml"
	configSuffix   = ".yml"

	installDir  = "config/install"
	optionalDir = "config/optional"

	scanConcurrency = 8
)

// Scan walks root looking for <name>.info.yml manifests and returns a
// registry of the extensions found. Every extension starts uninstalled; use
// Registry.Activate to mark the installed ones.
func Scan(root string) (*Registry, error) {
	infoFiles, err := findInfoFiles(root)
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		exts []*Extension
	)
	g := new(errgroup.Group)
	g.SetLimit(scanConcurrency)
	for _, infoPath := range infoFiles {
		g.Go(func() error {
			ext, err := loadExtension(root, infoPath)
			if err != nil {
				return err
			}
			mu.Lock()
			exts = append(exts, ext)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(exts, func(i, j int) bool { return exts[i].Name < exts[j].Name })
	registry := NewRegistry()
	for _, ext := range exts {
		if existing, ok := registry.Get(ext.Name); ok {
			logging.Warn("ExtensionScanner", "Extension %s found twice (%s and %s), keeping the first", ext.Name, existing.Path, ext.Path)
			continue
		}
		registry.Add(ext)
	}
	logging.Info("ExtensionScanner", "Found %d extensions under %s", len(exts), root)
	return registry, nil
}

func findInfoFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "config") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), infoSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan extensions under %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func loadExtension(root, infoPath string) (*Extension, error) {
	dir := filepath.Dir(infoPath)
	name := strings.TrimSuffix(filepath.Base(infoPath), infoSuffix)

	data, err := os.ReadFile(infoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", infoPath, err)
	}
	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", infoPath, err)
	}

	rel, err := filepath.Rel(root, dir)
	if err != nil {
		rel = dir
	}
	ext := &Extension{
		Name: name,
		Path: filepath.ToSlash(rel),
		Info: info,
	}

	featuresPath := filepath.Join(dir, name+featuresSuffix)
	if raw, err := os.ReadFile(featuresPath); err == nil {
		fi, err := ParseFeatureInfo(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", featuresPath, err)
		}
		ext.Feature = fi
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", featuresPath, err)
	}

	if ext.InstallConfig, err = listConfigNames(filepath.Join(dir, installDir)); err != nil {
		return nil, err
	}
	if ext.OptionalConfig, err = listConfigNames(filepath.Join(dir, optionalDir)); err != nil {
		return nil, err
	}
	return ext, nil
}

func listConfigNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), configSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), configSuffix))
	}
	sort.Strings(names)
	return names, nil
}
