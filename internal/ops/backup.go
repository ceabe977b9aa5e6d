package ops

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// The server keeps its saves flat: state.json for the player aggregate,
// leaderboard.json for the board, and an optional balance.yaml override.
// Backups snapshot exactly that layout, so archives carry bare file names
// only and restore never has to create subdirectories.

// BackupDataDir writes a tar.gz snapshot of every regular file at the top
// of the save directory. Symlinks and subdirectories are not save data and
// stay out of the archive.
func BackupDataDir(saveDir, archivePath string) error {
	if strings.TrimSpace(saveDir) == "" || strings.TrimSpace(archivePath) == "" {
		return fmt.Errorf("save directory and archive path are required")
	}
	saveDir = filepath.Clean(saveDir)
	archivePath = filepath.Clean(archivePath)

	entries, err := os.ReadDir(saveDir)
	if err != nil {
		return fmt.Errorf("read save directory: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if err := addSaveFile(tw, saveDir, entry.Name()); err != nil {
			f.Close()
			return err
		}
	}
	if err := tw.Close(); err != nil {
		f.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func addSaveFile(tw *tar.Writer, saveDir, name string) error {
	path := filepath.Join(saveDir, name)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = name
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	if _, err := io.Copy(tw, src); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	return nil
}

// RestoreDataDir unpacks a snapshot into targetDir. Entry names are
// checked against the flat save layout, so a doctored archive cannot
// write outside the target.
func RestoreDataDir(archivePath, targetDir string) error {
	if strings.TrimSpace(archivePath) == "" || strings.TrimSpace(targetDir) == "" {
		return fmt.Errorf("archive path and target directory are required")
	}
	targetDir = filepath.Clean(targetDir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	f, err := os.Open(filepath.Clean(archivePath))
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		name, err := saveFileName(hdr.Name)
		if err != nil {
			return err
		}
		if err := writeSaveFile(filepath.Join(targetDir, name), os.FileMode(hdr.Mode), tr); err != nil {
			return fmt.Errorf("restore %s: %w", name, err)
		}
	}
	return nil
}

func writeSaveFile(path string, mode os.FileMode, r io.Reader) error {
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// saveFileName accepts only bare file names. Snapshots never nest, so a
// path with separators, an absolute path, or a traversal marks the
// archive as foreign or tampered with.
func saveFileName(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." ||
		filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return "", fmt.Errorf("archive entry %q is not a save file", name)
	}
	return name, nil
}
