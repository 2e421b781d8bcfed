// Package explorer lists the local machine for the listing service: the
// device with its drives at the root, and folders and files below it.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/vidyasagar/fsurf/internal/listing"
)

var (
	ErrPathRequired = errors.New("path is required")
	ErrNotFound     = errors.New("path does not exist")
	ErrNotDirectory = errors.New("path is not a directory")
	ErrPermission   = errors.New("permission denied")
)

// Explorer answers listing queries against the local filesystem.
type Explorer struct {
	// Overridable for tests.
	hostInfo   func(ctx context.Context) (*host.InfoStat, error)
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
	goos       string
}

// New creates an Explorer for this machine.
func New() *Explorer {
	return &Explorer{
		hostInfo:   host.InfoWithContext,
		partitions: disk.PartitionsWithContext,
		usage:      disk.UsageWithContext,
		goos:       runtime.GOOS,
	}
}

// Root returns the device root listing.
func (e *Explorer) Root(ctx context.Context) (*listing.Listing, error) {
	dev, err := e.Device(ctx)
	if err != nil {
		return nil, err
	}
	drives, err := e.Drives(ctx)
	if err != nil {
		return nil, err
	}
	return &listing.Listing{Device: dev, Drives: drives}, nil
}

// Device reports the hostname and platform.
func (e *Explorer) Device(ctx context.Context) (*listing.Device, error) {
	info, err := e.hostInfo(ctx)
	if err != nil {
		hostname, herr := os.Hostname()
		if herr != nil {
			return nil, fmt.Errorf("reading host info: %w", err)
		}
		return &listing.Device{Hostname: hostname, Platform: platformName(e.goos)}, nil
	}
	return &listing.Device{Hostname: info.Hostname, Platform: platformName(e.goos)}, nil
}

// Drives lists the physical partitions with their usage. Partitions whose
// usage cannot be read are still listed, with zero sizes.
func (e *Explorer) Drives(ctx context.Context) ([]listing.Drive, error) {
	parts, err := e.partitions(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing partitions: %w", err)
	}

	seen := make(map[string]bool, len(parts))
	drives := make([]listing.Drive, 0, len(parts))
	for _, p := range parts {
		if p.Mountpoint == "" || seen[p.Mountpoint] {
			continue
		}
		seen[p.Mountpoint] = true

		d := listing.Drive{Label: p.Mountpoint, Path: p.Mountpoint}
		if e.goos == "windows" {
			letter := strings.TrimSuffix(strings.TrimSuffix(p.Mountpoint, `\`), ":")
			d.Letter = letter
			d.Label = "Local Disk"
			d.Path = letter + `:\`
		}
		if u, err := e.usage(ctx, d.Path); err == nil && u != nil {
			d.Size = listing.DriveSize{Free: u.Free, Used: u.Used, Total: u.Total}
		}
		drives = append(drives, d)
	}

	sort.Slice(drives, func(i, j int) bool { return drives[i].Path < drives[j].Path })
	return drives, nil
}

// Items lists the folders and files directly inside path. It stops with
// ctx.Err() once ctx is done.
func (e *Explorer) Items(ctx context.Context, path string, q Query) (*listing.Listing, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}
	// Windows has no "/" folder; it names the device root there.
	if e.goos == "windows" && (path == "/" || path == `\`) {
		return e.Root(ctx)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, classify(path, err)
	}

	search := strings.ToLower(q.Search)
	l := &listing.Listing{Folders: []listing.Folder{}, Files: []listing.File{}}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if !q.ShowHidden && IsHiddenName(name) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(name), search) {
			continue
		}

		// Skip entries we can't stat.
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		full := filepath.Join(path, name)
		fi = followLink(full, fi)

		if fi.IsDir() {
			size, err := countChildren(ctx, full, q.ShowHidden)
			if err != nil {
				return nil, err
			}
			l.Folders = append(l.Folders, listing.Folder{
				Name:     name,
				Path:     full,
				Size:     size,
				Modified: fi.ModTime(),
			})
			continue
		}
		l.Files = append(l.Files, listing.File{
			Name:     name,
			Path:     full,
			Size:     fi.Size(),
			Modified: fi.ModTime(),
		})
	}

	sortFolders(l.Folders, q.SortBy, q.Reverse)
	sortFiles(l.Files, q.SortBy, q.Reverse)
	return l, nil
}

// followLink returns the target's info when fi is a symlink that resolves.
func followLink(full string, fi fs.FileInfo) fs.FileInfo {
	if fi.Mode()&fs.ModeSymlink == 0 {
		return fi
	}
	if target, err := os.Stat(full); err == nil {
		return target
	}
	return fi
}

// countChildren returns [folders, files] directly inside dir. Symlinks
// count as what they point to; unreadable folders count as empty.
func countChildren(ctx context.Context, dir string, showHidden bool) (listing.FolderSize, error) {
	var size listing.FolderSize
	entries, err := os.ReadDir(dir)
	if err != nil {
		return size, nil
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return size, err
		}
		name := entry.Name()
		if !showHidden && IsHiddenName(name) {
			continue
		}
		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(filepath.Join(dir, name)); err == nil {
				isDir = target.IsDir()
			}
		}
		if isDir {
			size[0]++
		} else {
			size[1]++
		}
	}
	return size, nil
}

func sortFolders(folders []listing.Folder, key SortKey, reverse bool) {
	less := func(a, b listing.Folder) bool {
		switch key {
		case SortBySize:
			na, nb := a.Size.Folders()+a.Size.Files(), b.Size.Folders()+b.Size.Files()
			if na != nb {
				return na < nb
			}
		case SortByModified:
			if !a.Modified.Equal(b.Modified) {
				return a.Modified.Before(b.Modified)
			}
		}
		return lessName(a.Name, b.Name)
	}
	sort.SliceStable(folders, func(i, j int) bool {
		if reverse {
			return less(folders[j], folders[i])
		}
		return less(folders[i], folders[j])
	})
}

func sortFiles(files []listing.File, key SortKey, reverse bool) {
	less := func(a, b listing.File) bool {
		switch key {
		case SortBySize:
			if a.Size != b.Size {
				return a.Size < b.Size
			}
		case SortByModified:
			if !a.Modified.Equal(b.Modified) {
				return a.Modified.Before(b.Modified)
			}
		}
		return lessName(a.Name, b.Name)
	}
	sort.SliceStable(files, func(i, j int) bool {
		if reverse {
			return less(files[j], files[i])
		}
		return less(files[i], files[j])
	})
}

func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return a < b
	}
	return la < lb
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s: %w", path, ErrPermission)
	}
	return fmt.Errorf("reading %s: %w", path, err)
}

func platformName(goos string) string {
	switch goos {
	case "windows":
		return listing.PlatformWindows
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "freebsd":
		return "FreeBSD"
	}
	return goos
}
