package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ZipLimits bounds archive expansion.
type ZipLimits struct {
	MaxEntries   int   // Maximum resume files accepted from one archive
	MaxFileBytes int64 // Maximum uncompressed size per entry
}

// DefaultZipLimits returns the limits applied when none are configured.
func DefaultZipLimits() ZipLimits {
	return ZipLimits{MaxEntries: 200, MaxFileBytes: 16 << 20}
}

// ExpandZip extracts the resume files from an archive into destDir and
// returns the extracted paths. Entries with unsupported extensions are
// skipped; unsafe entry paths and limit violations abort the expansion.
func ExpandZip(zipPath, destDir string, limits ZipLimits) ([]string, error) {
	if limits.MaxEntries <= 0 {
		limits.MaxEntries = DefaultZipLimits().MaxEntries
	}
	if limits.MaxFileBytes <= 0 {
		limits.MaxFileBytes = DefaultZipLimits().MaxFileBytes
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = r.Close() }()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create extraction dir: %w", err)
	}

	var extracted []string
	for _, entry := range r.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if !safeEntryName(entry.Name) {
			return nil, &ErrUnsafePath{Entry: entry.Name}
		}
		base := filepath.Base(entry.Name)
		// macOS archives ship metadata alongside the real files.
		if strings.HasPrefix(base, ".") || strings.HasPrefix(entry.Name, "__MACOSX/") {
			continue
		}
		if !SupportedResume(base) {
			continue
		}
		if len(extracted) >= limits.MaxEntries {
			return nil, &ErrArchiveTooLarge{
				Filename: filepath.Base(zipPath),
				Reason:   fmt.Sprintf("more than %d resume files", limits.MaxEntries),
			}
		}
		if int64(entry.UncompressedSize64) > limits.MaxFileBytes {
			return nil, &ErrArchiveTooLarge{
				Filename: filepath.Base(zipPath),
				Reason:   fmt.Sprintf("entry %s exceeds %d bytes", base, limits.MaxFileBytes),
			}
		}

		destPath := filepath.Join(destDir, base)
		if err := copyEntry(entry, destPath, limits.MaxFileBytes); err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", base, err)
		}
		extracted = append(extracted, destPath)
	}
	return extracted, nil
}

// safeEntryName rejects absolute paths and any path that traverses upward.
func safeEntryName(name string) bool {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return false
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}

func copyEntry(entry *zip.File, destPath string, maxBytes int64) error {
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	// Guard against declared sizes that understate the real payload.
	n, err := io.Copy(dst, io.LimitReader(src, maxBytes+1))
	if err != nil {
		return err
	}
	if n > maxBytes {
		return &ErrArchiveTooLarge{
			Filename: entry.Name,
			Reason:   fmt.Sprintf("uncompressed payload exceeds %d bytes", maxBytes),
		}
	}
	return nil
}
