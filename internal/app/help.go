package app

const helpMarkdown = `# fsurf

Browse a machine's drives and folders. The breadcrumb bar shows the
hostname followed by the folders you opened; stepping back hides segments
without forgetting them, so you can step forward again.

## Moving around

| Key | Action |
|-----|--------|
| j / k | Move down / up |
| gg / G | Top / bottom |
| Ctrl+d / Ctrl+u | Half page down / up |
| Enter | Open the drive or folder under the cursor |
| H, Left, Backspace | Back one breadcrumb |
| L, Right | Forward one breadcrumb |
| ~ or 0 | Device root |
| 1-9 | Jump to a numbered breadcrumb |
| r | Reload |

## Folder view

| Key | Action |
|-----|--------|
| . | Show or hide dot-files |
| s | Cycle sort: name, size, modified |
| S | Reverse sort order |
| / | Filter names (empty clears) |

## Places

| Key | Action |
|-----|--------|
| b | Bookmark this location (again to remove) |
| B | Bookmarks |
| R | Recent locations |

Inside a panel: j/k to move, Enter to open, d to delete, Esc to close.

## Commands

| Command | Action |
|---------|--------|
| :root | Device root |
| :jump N | Breadcrumb N (0 is the root) |
| :back, :forward | Step through the breadcrumb |
| :open PATH | Open a folder by path |
| :sort name/size/modified | Sort key |
| :reverse, :hidden | Toggle sort order or dot-files |
| :filter TEXT | Filter names |
| :theme NAME | default, dracula, gruvbox, nord |
| :bookmarks, :recent | Open a panel |
| :clearrecent | Forget recent locations |
| :q | Quit |

Tab completes command names, :open paths and / filter names.

Press Esc or ? to close this help.
`
