package pacman

const (
	// Binary is the system repository manager
	Binary = "pacman"

	// ListCommand enumerates every package in the configured sync repositories
	ListCommand = "pacman -Sl"

	// UpdatesCommand lists upgradable packages without touching the system
	UpdatesCommand = "pacman -Qu"

	// SyncCommand force-refreshes the sync databases
	SyncCommand = "pacman -Syy"

	// UpgradeCommand performs a full system upgrade
	UpgradeCommand = "pacman -Syu"
)

// Labels for system-wide operations, used in place of a package name
const (
	SyncLabel    = "System Database Sync"
	UpgradeLabel = "System Update"
)

// InstalledMarker flags an installed package in -Sl output. When the local
// version differs pacman prints "[installed: <local>]" instead.
const InstalledMarker = "[installed]"
