package listing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriveLabel(t *testing.T) {
	d := Drive{Letter: "C", Label: "Local Disk", Path: `C:\`}
	assert.Equal(t, "C:", DriveLabel(PlatformWindows, d))
	assert.Equal(t, "Local Disk", DriveLabel("Linux", d))
	assert.Equal(t, "/home", DriveLabel(PlatformWindows, Drive{Label: "/home", Path: "/home"}))
}

func TestDecodeFolderListing(t *testing.T) {
	raw := `{"folders":[{"name":"src","path":"/p/src","size":[3,12]}],
	         "files":[{"name":"a.txt","path":"/p/a.txt","size":2048}]}`
	var l Listing
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	assert.False(t, l.IsRoot())
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 3, l.Folders[0].Size.Folders())
	assert.Equal(t, 12, l.Folders[0].Size.Files())
	assert.Equal(t, "Folders: 3 | Files: 12", l.Folders[0].Summary())
	assert.Equal(t, "File Size: 2.0 KiB", l.Files[0].Summary())
}

func TestDecodeRootListing(t *testing.T) {
	raw := `{"device":{"hostname":"box","platform":"Linux"},
	         "drives":[{"label":"/","path":"/","size":{"free":1024,"used":3072,"total":4096}}]}`
	var l Listing
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	require.True(t, l.IsRoot())
	assert.Equal(t, "box", l.Device.Hostname)
	assert.InDelta(t, 75.0, l.Drives[0].Size.UsedPercent(), 0.001)
	assert.Equal(t, "/", l.Drives[0].Title())
}

func TestNilListing(t *testing.T) {
	var l *Listing
	assert.False(t, l.IsRoot())
	assert.Equal(t, 0, l.Len())
}
