package aur

const (
	// DefaultHelper is the community helper used when none is configured
	DefaultHelper = "yay"

	// RepoName is the sentinel repository name the helper prints for AUR packages
	RepoName = "aur"
)

// KnownHelpers lists supported helpers in order of preference
var KnownHelpers = []string{"yay", "paru"}
