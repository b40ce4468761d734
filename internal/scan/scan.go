// Package scan provides folder enumeration and partitioning for conversion runs.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WebPExt is the target format extension.
const WebPExt = ".webp"

// supportedExtensions is the fixed set of file extensions considered
// eligible images: the target format plus common source raster formats.
var supportedExtensions = map[string]bool{
	WebPExt: true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsSupportedImage reports whether the path has a supported image extension.
func IsSupportedImage(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsWebP reports whether the path already has the target format extension.
func IsWebP(path string) bool {
	return strings.EqualFold(filepath.Ext(path), WebPExt)
}

// FolderBatch holds one folder's eligible images, partitioned at scan time.
// It is built once per run and not mutated during folder processing.
type FolderBatch struct {
	// Folder is the scanned directory path.
	Folder string

	// AllImages contains every eligible image in the folder, in stable order.
	AllImages []string

	// Convertible contains the images to encode this run. Excludes
	// already-WebP files when skip mode is enabled.
	Convertible []string

	// SkippedWebP contains already-WebP files excluded by skip mode.
	SkippedWebP []string
}

// ScanFolder enumerates the direct (non-recursive) eligible images of one
// folder and partitions them per the skip flag. Enumeration order is stable
// within a run: case-insensitive alphabetical by filename.
func ScanFolder(folder string, skipExistingWebP bool) (*FolderBatch, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("folder does not exist: %s", folder)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("cannot read folder %s: %w", folder, err)
	}

	batch := &FolderBatch{Folder: folder}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		// Skip hidden files
		if strings.HasPrefix(name, ".") {
			continue
		}

		if !IsSupportedImage(name) {
			continue
		}

		batch.AllImages = append(batch.AllImages, filepath.Join(folder, name))
	}

	sort.Slice(batch.AllImages, func(i, j int) bool {
		return strings.ToLower(filepath.Base(batch.AllImages[i])) < strings.ToLower(filepath.Base(batch.AllImages[j]))
	})

	for _, path := range batch.AllImages {
		if skipExistingWebP && IsWebP(path) {
			batch.SkippedWebP = append(batch.SkippedWebP, path)
		} else {
			batch.Convertible = append(batch.Convertible, path)
		}
	}

	return batch, nil
}
