package generator

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"featurepack/internal/features"
	"featurepack/pkg/logging"

	"github.com/klauspost/compress/gzip"
)

// Writer stores prepared packages somewhere.
type Writer interface {
	Write(ctx context.Context, packages []*features.Package) error
}

// DirectoryWriter writes each package below Root, into the package's
// Directory or, when that is empty, a directory named after the package.
type DirectoryWriter struct {
	Root string
	// Clean removes a package's existing config directory before writing so
	// items that left the package do not linger.
	Clean bool
}

// NewDirectoryWriter creates a writer rooted at root.
func NewDirectoryWriter(root string, clean bool) *DirectoryWriter {
	return &DirectoryWriter{Root: root, Clean: clean}
}

func (w *DirectoryWriter) Write(ctx context.Context, packages []*features.Package) error {
	for _, p := range packages {
		if err := ctx.Err(); err != nil {
			return err
		}
		dir := filepath.Join(w.Root, packageDir(p))
		if w.Clean {
			if err := os.RemoveAll(filepath.Join(dir, "config")); err != nil {
				return fmt.Errorf("failed to clean %s: %w", dir, err)
			}
		}
		for _, f := range p.Files {
			target := filepath.Join(dir, filepath.FromSlash(f.Subdirectory), f.Filename)
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("failed to create directory for %s: %w", target, err)
			}
			if err := os.WriteFile(target, []byte(f.Content), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
		}
		logging.Debug("Generator", "Wrote %d files for %s to %s", len(p.Files), p.FullName(), dir)
	}
	return nil
}

func packageDir(p *features.Package) string {
	if p.Directory != "" {
		return p.Directory
	}
	return p.FullName()
}

// ArchiveWriter writes every package into one gzip-compressed tar stream.
// Entries are rooted at the package's full name.
type ArchiveWriter struct {
	out     io.Writer
	level   int
	modTime time.Time
}

// NewArchiveWriter creates an archive writer streaming to out.
func NewArchiveWriter(out io.Writer) *ArchiveWriter {
	return &ArchiveWriter{out: out, level: gzip.DefaultCompression, modTime: time.Now()}
}

// WithModTime fixes the modification time stored for every entry.
func (w *ArchiveWriter) WithModTime(t time.Time) *ArchiveWriter {
	w.modTime = t
	return w
}

// WithLevel sets the gzip compression level.
func (w *ArchiveWriter) WithLevel(level int) *ArchiveWriter {
	w.level = level
	return w
}

func (w *ArchiveWriter) Write(ctx context.Context, packages []*features.Package) error {
	zw, err := gzip.NewWriterLevel(w.out, w.level)
	if err != nil {
		return fmt.Errorf("failed to create gzip writer: %w", err)
	}
	tw := tar.NewWriter(zw)

	if err := w.writeEntries(ctx, tw, packages); err != nil {
		tw.Close()
		zw.Close()
		return err
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish compression: %w", err)
	}
	return nil
}

func (w *ArchiveWriter) writeEntries(ctx context.Context, tw *tar.Writer, packages []*features.Package) error {
	for _, p := range packages {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, f := range p.Files {
			name := path.Join(p.FullName(), f.Subdirectory, f.Filename)
			hdr := &tar.Header{
				Name:    name,
				Mode:    0o644,
				Size:    int64(len(f.Content)),
				ModTime: w.modTime,
			}
			if err := tw.WriteHeader(hdr); err != nil {
				return fmt.Errorf("failed to write header for %s: %w", name, err)
			}
			if _, err := io.WriteString(tw, f.Content); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
		}
	}
	return nil
}
