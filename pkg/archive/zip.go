package archive

import (
	"archive/zip"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/saveback/pkg/constants"
	"github.com/agentstation/saveback/pkg/errors"
)

// writeTree writes every directory and regular file below root into a zip
// stream on w. Symlinks to regular files are followed; other symlinks and
// special files are skipped with a warning. Entry names are relative to root, slash separated, and
// directories carry a trailing slash so empty ones survive a round trip.
// It returns the number of entries written.
func writeTree(fsys afero.Fs, root string, w io.Writer, level int, logger *zerolog.Logger) (int, error) {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	entries := 0
	walkErr := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.WrapFS("archive", path, err)
		}
		if path == root {
			return nil
		}
		// Symlinked files are stored as the file they point at.
		if info.Mode()&os.ModeSymlink != 0 {
			target, statErr := fsys.Stat(path)
			if statErr != nil || !target.Mode().IsRegular() {
				logger.Warn().Err(statErr).Str("path", path).Msg("Skipping symlink that does not point to a regular file")
				return nil
			}
			info = target
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			logger.Warn().Str("path", path).Str("mode", info.Mode().String()).Msg("Skipping non-regular file")
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.WrapFS("archive", path, err)
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return errors.WrapFS("archive", path, err)
		}
		header.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			header.Name += "/"
			header.Method = zip.Store
		} else {
			header.Method = zip.Deflate
		}

		hw, err := zw.CreateHeader(header)
		if err != nil {
			return errors.WrapFS("archive", path, err)
		}
		entries++
		if info.IsDir() {
			return nil
		}

		return copyFrom(fsys, path, hw)
	})
	if walkErr != nil {
		_ = zw.Close()
		return entries, walkErr
	}

	if err := zw.Close(); err != nil {
		return entries, errors.WrapFS("archive", root, err)
	}
	return entries, nil
}

func copyFrom(fsys afero.Fs, path string, w io.Writer) error {
	f, err := fsys.Open(path)
	if err != nil {
		return errors.WrapFS("archive", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return errors.WrapFS("archive", path, err)
	}
	return nil
}

// extractTree unpacks the zip at archivePath into dest, creating
// directories as needed and overwriting files that already exist.
func extractTree(fsys afero.Fs, archivePath, dest string) (int, error) {
	f, err := fsys.Open(archivePath)
	if err != nil {
		return 0, errors.WrapFS("open", archivePath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, errors.WrapFS("open", archivePath, err)
	}

	// ErrInsecurePath comes with a usable reader; safeJoin rejects the
	// offending entries itself.
	zr, err := zip.NewReader(f, info.Size())
	if err != nil && !stderrors.Is(err, zip.ErrInsecurePath) {
		return 0, errors.WrapFS("open", archivePath, err)
	}
	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)

	for i, zf := range zr.File {
		target, err := safeJoin(dest, zf.Name)
		if err != nil {
			return i, err
		}

		if strings.HasSuffix(zf.Name, "/") || zf.FileInfo().IsDir() {
			if err := fsys.MkdirAll(target, constants.DirPermissions); err != nil {
				return i, errors.WrapFS("extract", target, err)
			}
			continue
		}

		if err := extractFile(fsys, zf, target); err != nil {
			return i, err
		}
	}
	return len(zr.File), nil
}

func extractFile(fsys afero.Fs, zf *zip.File, target string) error {
	if err := fsys.MkdirAll(filepath.Dir(target), constants.DirPermissions); err != nil {
		return errors.WrapFS("extract", filepath.Dir(target), err)
	}

	rc, err := zf.Open()
	if err != nil {
		return errors.WrapFS("extract", zf.Name, err)
	}
	defer rc.Close()

	perm := zf.Mode().Perm()
	if perm == 0 {
		perm = constants.FilePermissions
	}
	out, err := fsys.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return errors.WrapFS("extract", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return errors.WrapFS("extract", target, err)
	}
	if err := out.Close(); err != nil {
		return errors.WrapFS("extract", target, err)
	}

	if !zf.Modified.IsZero() {
		if err := fsys.Chtimes(target, zf.Modified, zf.Modified); err != nil {
			return errors.WrapFS("extract", target, err)
		}
	}
	return nil
}

// safeJoin resolves an archive entry name below dest, rejecting absolute
// names and names that climb out with "..".
func safeJoin(dest, name string) (string, error) {
	local := filepath.FromSlash(strings.TrimSuffix(name, "/"))
	if !filepath.IsLocal(local) {
		return "", errors.NewFilesystemError("extract", name, errors.ErrUnsafePath)
	}
	return filepath.Join(dest, local), nil
}
