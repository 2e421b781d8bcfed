// Package listing defines what a listing service returns for a path: the
// device and its drives at the root, folders and files everywhere else.
package listing

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// PlatformWindows is the platform name reported by Windows hosts.
const PlatformWindows = "Windows"

// Device describes the machine being browsed.
type Device struct {
	Hostname string `json:"hostname"`
	Platform string `json:"platform"`
}

// DriveSize holds drive usage in bytes.
type DriveSize struct {
	Free  uint64 `json:"free"`
	Used  uint64 `json:"used"`
	Total uint64 `json:"total"`
}

// UsedPercent returns the used share of the drive, 0 when the total is unknown.
func (s DriveSize) UsedPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Used) / float64(s.Total) * 100
}

// Drive is a mounted volume.
type Drive struct {
	Letter string    `json:"letter,omitempty"`
	Label  string    `json:"label"`
	Path   string    `json:"path"`
	Size   DriveSize `json:"size"`
}

// FolderSize counts a folder's direct children as [folders, files].
type FolderSize [2]int

// Folders returns the number of sub-folders.
func (s FolderSize) Folders() int { return s[0] }

// Files returns the number of files.
func (s FolderSize) Files() int { return s[1] }

// Folder is a directory inside the listed path.
type Folder struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Size     FolderSize `json:"size"`
	Modified time.Time  `json:"modified"`
}

// File is a regular file inside the listed path.
type File struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Listing is the result of querying one path.
type Listing struct {
	Device  *Device  `json:"device,omitempty"`
	Drives  []Drive  `json:"drives,omitempty"`
	Folders []Folder `json:"folders,omitempty"`
	Files   []File   `json:"files,omitempty"`
}

// IsRoot reports whether l is a device root listing.
func (l *Listing) IsRoot() bool {
	return l != nil && l.Device != nil
}

// Len returns the number of items in the listing.
func (l *Listing) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Drives) + len(l.Folders) + len(l.Files)
}

// DriveLabel returns the breadcrumb label for entering d on platform.
// Windows drives are labelled by their letter, everything else by label.
func DriveLabel(platform string, d Drive) string {
	if platform == PlatformWindows && d.Letter != "" {
		return d.Letter + ":"
	}
	return d.Label
}

// Title returns the display name of a drive, prefixed by its letter if any.
func (d Drive) Title() string {
	if d.Letter != "" {
		return d.Letter + ": " + d.Label
	}
	return d.Label
}

// Summary renders drive usage for display.
func (d Drive) Summary() string {
	return fmt.Sprintf("Free: %s | Used: %s | Total: %s",
		humanize.IBytes(d.Size.Free), humanize.IBytes(d.Size.Used), humanize.IBytes(d.Size.Total))
}

// Summary renders a folder's child counts for display.
func (f Folder) Summary() string {
	return fmt.Sprintf("Folders: %d | Files: %d", f.Size.Folders(), f.Size.Files())
}

// Summary renders a file's size for display.
func (f File) Summary() string {
	if f.Size < 0 {
		return "File Size: ?"
	}
	return "File Size: " + humanize.IBytes(uint64(f.Size))
}
