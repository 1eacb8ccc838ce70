// Package archive extracts the first .tap or .tzx member from a tape
// archive (.zip or .7z), the common distribution format for TOSEC-style
// tape collections. It never touches the filesystem itself; callers
// hand it bytes already read from disk, and the zip/7z readers take
// the archive's size from the length of those bytes.
package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"

	"github.com/speccygo/zx48/internal/zxerr"
)

func isTapeMember(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".tap" || ext == ".tzx"
}

// ExtractZip returns the bytes of the first .tap/.tzx member of a zip
// archive, and that member's name (so the caller can pick TAP vs TZX
// parsing by extension).
func ExtractZip(raw []byte) ([]byte, string, error) {
	r, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, "", err
	}
	for _, f := range r.File {
		if !isTapeMember(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, "", err
		}
		return data, f.Name, nil
	}
	return nil, "", zxerr.LoadError{Reason: "zip archive contains no .tap/.tzx member"}
}

// Extract7z returns the bytes of the first .tap/.tzx member of a 7z
// archive, and that member's name.
func Extract7z(raw []byte) ([]byte, string, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, "", err
	}
	for _, f := range r.File {
		if !isTapeMember(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, "", err
		}
		return data, f.Name, nil
	}
	return nil, "", zxerr.LoadError{Reason: "7z archive contains no .tap/.tzx member"}
}

// Extract picks ExtractZip or Extract7z by the archive's own file
// extension (not its contents, matching the teacher's extension-based
// dispatch in pkg/utils.LoadFile).
func Extract(archivePath string, raw []byte) ([]byte, string, error) {
	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		return ExtractZip(raw)
	case ".7z":
		return Extract7z(raw)
	default:
		return nil, "", zxerr.LoadError{Reason: "unrecognised archive extension: " + archivePath}
	}
}
