// Package dataset locates the folders and image files of a dehazing dataset.
//
// A dataset root holds a reference folder (GT), a degraded folder (hazy) and
// zero or more method folders with the outputs of the methods under
// comparison. Every folder stores one file per sample identifier, named
// <identifier><suffix><extension>.
package dataset

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	// ReferenceFolder is the exact name of the ground-truth folder.
	ReferenceFolder = "GT"
	// DegradedFolder is the exact name of the hazy input folder.
	DegradedFolder = "hazy"

	methodSuffix = "_hazy"
	methodPrefix = "results_"
)

// Extensions lists the supported image extensions in lookup order.
var Extensions = []string{".png", ".jpg", ".jpeg"}

type (
	// Role tells which part a folder plays in the comparison.
	Role int

	// BaseFolders holds the names of the reference and degraded folders.
	// An empty name means the folder was not found.
	BaseFolders struct {
		Reference string
		Degraded  string
	}

	// Column is one column of a comparison grid.
	Column struct {
		Folder string // Folder name relative to the dataset root.
		Label  string // Header shown above the column.
		Role   Role
	}
)

const (
	RoleDegraded Role = iota
	RoleMethod
	RoleReference
)

func (r Role) String() string {
	switch r {
	case RoleDegraded:
		return "degraded"
	case RoleMethod:
		return "method"
	case RoleReference:
		return "reference"
	}
	return "unknown"
}

// Suffix returns the filename suffix used by folders with this role.
// Only the reference folder differs from the rest.
func (r Role) Suffix() string {
	if r == RoleReference {
		return "_GT"
	}
	return "_hazy"
}

// Complete reports whether both base folders were found.
func (b BaseFolders) Complete() bool {
	return b.Reference != "" && b.Degraded != ""
}

// IsMethodFolder reports whether name follows one of the method folder
// conventions (name_hazy or results_*). The base folder names never match.
func IsMethodFolder(name string) bool {
	if name == ReferenceFolder || name == DegradedFolder {
		return false
	}
	return strings.HasSuffix(name, methodSuffix) || strings.HasPrefix(name, methodPrefix)
}

// DiscoverMethodFolders returns the method folders directly under root in
// lexicographic order. An empty result is not an error.
func DiscoverMethodFolders(root string) ([]string, error) {
	dirs, err := subdirectories(root)
	if err != nil {
		return nil, err
	}

	var methods []string
	for _, name := range dirs {
		if IsMethodFolder(name) {
			methods = append(methods, name)
		}
	}
	sort.Strings(methods)

	return methods, nil
}

// DiscoverBaseFolders looks for the reference and degraded folders directly
// under root. Each field is left empty on its own when that folder is absent.
func DiscoverBaseFolders(root string) (BaseFolders, error) {
	var base BaseFolders

	dirs, err := subdirectories(root)
	if err != nil {
		return base, err
	}

	for _, name := range dirs {
		switch name {
		case ReferenceFolder:
			base.Reference = name
		case DegradedFolder:
			base.Degraded = name
		}
	}

	return base, nil
}

// Columns returns the grid columns in display order: the degraded input,
// then every method in the given order, then the reference.
func Columns(base BaseFolders, methods []string) []Column {
	columns := make([]Column, 0, len(methods)+2)
	columns = append(columns, Column{Folder: base.Degraded, Label: "Hazy Input", Role: RoleDegraded})
	for i, method := range methods {
		columns = append(columns, Column{Folder: method, Label: MethodLabel(i), Role: RoleMethod})
	}
	columns = append(columns, Column{Folder: base.Reference, Label: "Reference (GT)", Role: RoleReference})
	return columns
}

// MethodLabel returns the anonymised header for the i-th method (0-based):
// Method A, Method B, ..., Method Z, Method AA, ...
func MethodLabel(i int) string {
	var letters []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		letters = append([]byte{byte('A' + (n-1)%26)}, letters...)
	}
	return "Method " + string(letters)
}

// ResolveImagePath returns the first existing file for identifier in folder,
// trying every supported extension with the suffix of role.
func ResolveImagePath(folder, identifier string, role Role) (string, bool) {
	suffix := role.Suffix()

	for _, ext := range Extensions {
		path := filepath.Join(folder, identifier+suffix+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			log.WithFields(log.Fields{"path": path, "role": role}).Info("Found image file")
			return path, true
		}
		log.WithFields(log.Fields{"path": path, "role": role}).Debug("Image file not found")
	}

	return "", false
}

// Lists the names of the immediate subdirectories of root. Symlinks to
// directories count as directories.
func subdirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		info, err := os.Stat(filepath.Join(root, entry.Name()))
		if err != nil {
			log.WithFields(log.Fields{"path": entry.Name(), "error": err}).Warn("Skipping unreadable entry")
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}

	return dirs, nil
}
