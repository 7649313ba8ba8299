// Package vaultpath normalizes vault listing entries into folder paths and
// accumulates them, ancestors included, in a deduplicated folder set.
package vaultpath

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Folder is a discovered vault directory. The listing API carries no
// separate display name, so Name mirrors Path.
type Folder struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Clean collapses runs of slashes and strips leading and trailing ones, so
// "a//b/" and "a/b" share one folder identity. The vault root cleans to "".
func Clean(p string) string {
	if !strings.Contains(p, "/") {
		return p
	}
	segs := strings.Split(p, "/")
	kept := segs[:0]
	for _, s := range segs {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "/")
}

// IsDir reports whether a raw listing entry denotes a directory. The API
// marks directories with a trailing slash.
func IsDir(entry string) bool {
	return strings.HasSuffix(entry, "/")
}

// Resolve absolutizes an entry path against the directory it was listed
// under. Listings return bare child names as well as paths already prefixed
// with the requested directory; both forms resolve to the same absolute
// path.
func Resolve(parent, p string) string {
	p = Clean(p)
	parent = Clean(parent)
	if parent == "" || p == "" {
		return p
	}
	if p == parent || strings.HasPrefix(p, parent+"/") {
		return p
	}
	return parent + "/" + p
}

// FromEntry derives the folder a raw listing entry implies, relative to the
// directory it was listed under. Directory entries map to themselves, file
// paths to their parent directory, and files sitting directly in parent
// contribute no folder ("").
func FromEntry(parent, entry string) string {
	abs := Resolve(parent, entry)
	if abs == "" {
		return ""
	}
	if IsDir(entry) {
		return abs
	}
	if i := strings.LastIndex(abs, "/"); i >= 0 {
		return abs[:i]
	}
	return ""
}

// FolderSet accumulates unique folders keyed by cleaned path. Membership of
// a path implies membership of every ancestor. Use NewFolderSet.
type FolderSet struct {
	folders map[string]Folder
}

// NewFolderSet returns an empty folder set.
func NewFolderSet() *FolderSet {
	return &FolderSet{folders: make(map[string]Folder)}
}

// Add registers p and every ancestor prefix. Idempotent; empty or
// slash-only paths are ignored.
func (s *FolderSet) Add(p string) {
	p = Clean(p)
	if p == "" {
		return
	}
	segs := strings.Split(p, "/")
	for i := range segs {
		prefix := strings.Join(segs[:i+1], "/")
		if _, ok := s.folders[prefix]; !ok {
			s.folders[prefix] = Folder{Path: prefix, Name: prefix}
		}
	}
}

// Has reports whether p is registered.
func (s *FolderSet) Has(p string) bool {
	_, ok := s.folders[Clean(p)]
	return ok
}

// Len returns the number of registered folders.
func (s *FolderSet) Len() int {
	return len(s.folders)
}

// Sorted returns all folders ordered ascending by path under locale-aware
// collation.
func (s *FolderSet) Sorted() []Folder {
	out := make([]Folder, 0, len(s.folders))
	for _, f := range s.folders {
		out = append(out, f)
	}
	c := collate.New(language.Und)
	sort.Slice(out, func(i, j int) bool {
		return c.CompareString(out[i].Path, out[j].Path) < 0
	})
	return out
}
