package output

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/config"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/scan"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/util"
)

// ArchiveBuilder packs a folder's converted images into one compressed
// archive named after the folder, placed in its parent directory. The zip
// and cbz formats produce identical bytes; only the extension differs.
type ArchiveBuilder struct {
	Format config.ArchiveFormat
}

// Name identifies the strategy in status output.
func (s *ArchiveBuilder) Name() string {
	return fmt.Sprintf("create %s archive", s.Format.Extension())
}

// Finalize builds the folder archive from all produced outputs plus any
// skip-excluded WebP originals, so the archive is a complete set. A
// pre-existing archive of the same name is removed first; failure to remove
// it aborts only this folder's archiving. The temporary directory is
// removed regardless of outcome.
func (s *ArchiveBuilder) Finalize(batch *scan.FolderBatch, tempDir string) (Result, []string) {
	defer func() { _ = os.RemoveAll(tempDir) }()

	folder := filepath.Clean(batch.Folder)
	name := filepath.Base(folder) + "." + s.Format.Extension()
	archivePath := filepath.Join(filepath.Dir(folder), name)

	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		return Result{}, []string{fmt.Sprintf("remove existing archive %s: %v", name, err)}
	}

	errs := s.writeArchive(archivePath, tempDir, batch.SkippedWebP)
	if errs != nil && !util.FileExists(archivePath) {
		return Result{}, errs
	}

	result := Result{ArchivePath: archivePath}
	// Stat failure is non-fatal; the size stays unknown.
	if info, err := os.Stat(archivePath); err == nil {
		result.ArchiveSize = info.Size()
	}

	return result, errs
}

// writeArchive creates the archive and adds the produced outputs followed
// by the skip-excluded originals. Per-file failures are collected; only a
// failure to create the archive itself aborts.
func (s *ArchiveBuilder) writeArchive(archivePath, tempDir string, extras []string) []string {
	f, err := os.Create(archivePath)
	if err != nil {
		return []string{fmt.Sprintf("create archive %s: %v", filepath.Base(archivePath), err)}
	}

	var errs []string
	zw := zip.NewWriter(f)

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		errs = append(errs, fmt.Sprintf("read output directory: %v", err))
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addFile(zw, filepath.Join(tempDir, entry.Name())); err != nil {
			errs = append(errs, fmt.Sprintf("archive %s: %v", entry.Name(), err))
		}
	}

	for _, extra := range extras {
		if err := addFile(zw, extra); err != nil {
			errs = append(errs, fmt.Sprintf("archive %s: %v", filepath.Base(extra), err))
		}
	}

	if err := zw.Close(); err != nil {
		errs = append(errs, fmt.Sprintf("finalize archive %s: %v", filepath.Base(archivePath), err))
	}
	if err := f.Close(); err != nil {
		errs = append(errs, fmt.Sprintf("close archive %s: %v", filepath.Base(archivePath), err))
	}

	return errs
}

// addFile stores one file under its base name, deflate-compressed.
func addFile(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   filepath.Base(path),
		Method: zip.Deflate,
	})
	if err != nil {
		return err
	}

	_, err = io.Copy(w, src)
	return err
}
