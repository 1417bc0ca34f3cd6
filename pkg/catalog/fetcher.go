package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/helwan-linux/helstore/pkg/aur"
	"github.com/helwan-linux/helstore/pkg/core"
	"github.com/helwan-linux/helstore/pkg/pacman"
	"github.com/helwan-linux/helstore/pkg/runner"
)

// CommandRunner runs a read-only command and buffers its output
type CommandRunner interface {
	Run(ctx context.Context, command string) runner.Result
}

// Listing is one source of package records: a command and the rules
// that understand its output
type Listing struct {
	Name    string
	Command string
	Rules   core.RuleSet
}

// Config configures the catalog fetcher
type Config struct {
	RepoCommand      string      // Default: pacman -Sl
	CommunityCommand string      // Default: yay -Sl
	Logger           *log.Logger // Custom logger
}

// SourceStatus reports how one listing fared during a fetch
type SourceStatus struct {
	Name    string
	Command string
	OK      bool
	Count   int    // Records parsed from this listing
	Message string // Failure reason when !OK
}

// Result is the outcome of a catalog fetch
type Result struct {
	Success  bool
	Packages *Catalog
	Message  string
	Sources  []SourceStatus
}

// Fetcher runs the listing commands concurrently and merges their output
type Fetcher struct {
	runner   CommandRunner
	listings []Listing
	logger   *log.Logger
}

// NewFetcher creates a fetcher for the repository and community listings
func NewFetcher(r CommandRunner, cfg *Config) *Fetcher {
	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.RepoCommand == "" {
		cfg.RepoCommand = pacman.ListCommand
	}
	if cfg.CommunityCommand == "" {
		cfg.CommunityCommand = aur.DefaultHelper + " -Sl"
	}

	return NewFetcherWithListings(r, cfg.Logger,
		Listing{Name: "repository", Command: cfg.RepoCommand, Rules: pacman.ListingRules()},
		Listing{Name: "community", Command: cfg.CommunityCommand, Rules: aur.ListingRules()},
	)
}

// NewFetcherWithListings creates a fetcher for arbitrary listings. Records
// are merged in listing order, so later listings win on duplicate names.
func NewFetcherWithListings(r CommandRunner, logger *log.Logger, listings ...Listing) *Fetcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Fetcher{runner: r, listings: listings, logger: logger}
}

// Fetch runs every listing at once, waits for all of them and returns the
// merged catalog. A failing listing only removes its own records.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	f.logger.Printf("Fetching all packages...")

	parsed := make([][]core.Package, len(f.listings))
	statuses := make([]SourceStatus, len(f.listings))

	var wg conc.WaitGroup
	for i, l := range f.listings {
		i, l := i, l
		wg.Go(func() {
			parsed[i], statuses[i] = f.fetchListing(ctx, l)
		})
	}

	if recovered := wg.WaitAndRecover(); recovered != nil {
		err := recovered.AsError()
		f.logger.Printf("⚠️ Catalog fetch aborted: %v", err)
		return Result{
			Packages: New(),
			Message:  fmt.Sprintf("fetching catalog: %v", err),
			Sources:  statuses,
		}
	}

	cat := Merge(parsed...)
	f.logger.Printf("Total unique packages found: %d", cat.Len())

	var failures []string
	for _, s := range statuses {
		if !s.OK {
			failures = append(failures, fmt.Sprintf("%s listing unavailable: %s", s.Name, s.Message))
		}
	}

	return Result{
		Success:  true,
		Packages: cat,
		Message:  strings.Join(failures, "; "),
		Sources:  statuses,
	}
}

func (f *Fetcher) fetchListing(ctx context.Context, l Listing) ([]core.Package, SourceStatus) {
	status := SourceStatus{Name: l.Name, Command: l.Command}

	res := f.runner.Run(ctx, l.Command)
	if !res.Success {
		f.logger.Printf("⚠️ Failed to fetch %s packages: %s", l.Name, strings.TrimSpace(res.Message))
		status.Message = strings.TrimSpace(res.Message)
		return nil, status
	}

	pkgs, err := l.Rules.Parse(strings.NewReader(res.Output))
	if err != nil {
		// keep what was parsed before the scanner gave up
		f.logger.Printf("⚠️ Failed to parse %s listing: %v", l.Name, err)
	}

	f.logger.Printf("Parsed %d %s packages.", len(pkgs), l.Name)
	status.OK = true
	status.Count = len(pkgs)
	return pkgs, status
}
