// helstore.go
package helstore

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/helwan-linux/helstore/pkg/aur"
	"github.com/helwan-linux/helstore/pkg/catalog"
	"github.com/helwan-linux/helstore/pkg/core"
	"github.com/helwan-linux/helstore/pkg/pacman"
	"github.com/helwan-linux/helstore/pkg/platform"
	"github.com/helwan-linux/helstore/pkg/privileged"
	"github.com/helwan-linux/helstore/pkg/progress"
	"github.com/helwan-linux/helstore/pkg/runner"
)

// UpToDateMessage is reported by CheckForUpdates when nothing is upgradable
const UpToDateMessage = "Your system is up-to-date."

// Runner runs both buffered and streamed commands
type Runner interface {
	catalog.CommandRunner
	privileged.StreamRunner
}

// UpdateResult is the outcome of an update check
type UpdateResult struct {
	Success          bool
	UpdatesAvailable bool
	UpdateCount      int
	UpdateList       []string      // Raw descriptor lines
	Updates          []core.Update // Lines decoded as "name old -> new"
	Message          string
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger shared by every component
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithRunner replaces the shell runner
func WithRunner(r Runner) Option {
	return func(m *Manager) { m.runner = r }
}

// WithGate makes privileged operations share g, so at most one runs at a time
func WithGate(g *Gate) Option {
	return func(m *Manager) { m.gate = g }
}

// WithPlatform skips tool detection and uses p instead
func WithPlatform(p *platform.Platform) Option {
	return func(m *Manager) { m.platform = p }
}

// Manager is the boundary API of the engine. It routes every intent to the
// catalog fetcher, the runner or the privileged executor, and fans progress
// events out to subscribers.
type Manager struct {
	config   core.Config
	runner   Runner
	fetcher  *catalog.Fetcher
	executor *privileged.Executor
	hub      *progress.Hub
	gate     *Gate
	platform *platform.Platform
	logger   *log.Logger
}

// New creates a manager. A nil config uses core.DefaultConfig. Empty helper
// and terminal settings are filled in from the tools found in PATH.
func New(cfg *core.Config, opts ...Option) *Manager {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	m := &Manager{config: *cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = log.New(io.Discard, "", 0)
	}
	if m.gate == nil && cfg.Exclusive {
		m.gate = NewGate()
	}

	m.resolveTools()
	m.resolveCommands()

	if m.runner == nil {
		m.runner = runner.New(&runner.Config{Shell: m.config.Shell, Logger: m.logger})
	}

	m.fetcher = catalog.NewFetcher(m.runner, &catalog.Config{
		RepoCommand:      m.config.Commands.RepoList,
		CommunityCommand: m.config.Commands.CommunityList,
		Logger:           m.logger,
	})
	m.executor = privileged.New(m.runner, &privileged.Config{
		Terminal:    m.config.Terminal,
		Escalate:    m.config.Escalate,
		ConfirmFlag: m.config.ConfirmFlag,
		PausePrompt: m.config.PausePrompt,
		Logger:      m.logger,
	})
	m.hub = progress.NewHub(m.logger)

	return m
}

func (m *Manager) resolveTools() {
	c := &m.config

	if (c.Helper == "" || c.Terminal == "") && m.platform == nil {
		p, err := platform.Detect()
		if err != nil {
			m.logger.Printf("⚠️ Tool detection failed: %v", err)
		} else {
			m.platform = p
		}
	}

	if c.Helper == "" {
		c.Helper = aur.DefaultHelper
		if m.platform != nil && m.platform.Helper != "" {
			c.Helper = m.platform.Helper
		}
	}

	switch c.Terminal {
	case core.Disabled:
		c.Terminal = ""
	case "":
		if m.platform != nil && m.platform.Terminal != "" {
			c.Terminal = m.platform.Terminal
		} else {
			m.logger.Printf("⚠️ No terminal emulator found, privileged commands will run without a window")
		}
	}

	if c.Escalate == core.Disabled {
		c.Escalate = ""
	}
}

func (m *Manager) resolveCommands() {
	cmds := &m.config.Commands

	cmds.CommunityList = m.config.CommunityListCommand()
	if cmds.RepoList == "" {
		cmds.RepoList = pacman.ListCommand
	}
	if cmds.Updates == "" {
		cmds.Updates = pacman.UpdatesCommand
	}
	if cmds.Sync == "" {
		cmds.Sync = pacman.SyncCommand
	}
	if cmds.Upgrade == "" {
		cmds.Upgrade = pacman.UpgradeCommand
	}
}

// Config returns the effective configuration after detection and defaults
func (m *Manager) Config() core.Config {
	return m.config
}

// Platform returns the detected platform, nil if detection did not run
func (m *Manager) Platform() *platform.Platform {
	return m.platform
}

// OnProgress subscribes handler to the events of every privileged operation.
// The returned function removes the subscription. Requests rejected before
// a command is started (a malformed package name or a busy gate) produce no
// events; the rejection is reported only in the returned core.Result.
func (m *Manager) OnProgress(handler progress.Handler) func() {
	return m.hub.Subscribe(handler)
}

// FetchCatalog lists both sources concurrently and merges them
func (m *Manager) FetchCatalog(ctx context.Context) catalog.Result {
	return m.fetcher.Fetch(ctx)
}

// RunReadOnly runs a non-privileged command and buffers its output
func (m *Manager) RunReadOnly(ctx context.Context, command string) runner.Result {
	return m.runner.Run(ctx, command)
}

// Install installs the requested package
func (m *Manager) Install(ctx context.Context, req core.OperationRequest) core.Result {
	req.Intent = core.IntentInstall
	return m.apply(ctx, "install", req)
}

// Remove removes the requested package
func (m *Manager) Remove(ctx context.Context, req core.OperationRequest) core.Result {
	req.Intent = core.IntentRemove
	return m.apply(ctx, "remove", req)
}

// SyncDatabases force-refreshes the sync databases
func (m *Manager) SyncDatabases(ctx context.Context) core.Result {
	return m.runPrivileged(ctx, "sync", m.config.Commands.Sync, pacman.SyncLabel)
}

// FullUpgrade upgrades every installed package. The catalog is not refetched.
func (m *Manager) FullUpgrade(ctx context.Context) core.Result {
	return m.runPrivileged(ctx, "upgrade", m.config.Commands.Upgrade, pacman.UpgradeLabel)
}

// CheckForUpdates lists upgradable packages. A failing query is reported as
// a successful check with no updates, its reason carried in Message.
func (m *Manager) CheckForUpdates(ctx context.Context) UpdateResult {
	res := m.runner.Run(ctx, m.config.Commands.Updates)
	if !res.Success {
		m.logger.Printf("⚠️ Failed to query upgradable packages: %s", res.Message)
		return UpdateResult{Success: true, Message: res.Message}
	}

	lines, updates := pacman.ParseUpdates(res.Output)
	if len(lines) == 0 {
		return UpdateResult{Success: true, Message: UpToDateMessage}
	}

	return UpdateResult{
		Success:          true,
		UpdatesAvailable: true,
		UpdateCount:      len(lines),
		UpdateList:       lines,
		Updates:          updates,
		Message:          fmt.Sprintf("%d system updates available!", len(lines)),
	}
}

// CommandFor derives the command line for a request whose Command is empty
func (m *Manager) CommandFor(req core.OperationRequest) string {
	if req.Source == core.SourceCommunity {
		if req.Intent == core.IntentRemove {
			return aur.RemoveCommand(m.config.Helper, req.PackageName)
		}
		return aur.InstallCommand(m.config.Helper, req.PackageName)
	}

	if req.Intent == core.IntentRemove {
		return pacman.RemoveCommand(req.PackageName)
	}
	return pacman.InstallCommand(req.PackageName)
}

func (m *Manager) apply(ctx context.Context, op string, req core.OperationRequest) core.Result {
	req.PackageName = strings.TrimSpace(req.PackageName)
	if req.PackageName == "" {
		err := &Error{Op: op, Err: fmt.Errorf("%w: package name is required", ErrInvalidRequest)}
		return core.Result{Message: err.Error()}
	}
	// the name ends up in a shell command run as root
	if !pacman.ValidName(req.PackageName) {
		err := &Error{Op: op, Package: req.PackageName, Err: fmt.Errorf("%w: malformed package name", ErrInvalidRequest)}
		m.logger.Printf("⚠️ Rejected %s: %v", op, err)
		return core.Result{Message: err.Error()}
	}

	command := req.Command
	if command == "" {
		command = m.CommandFor(req)
	}

	return m.runPrivileged(ctx, op, command, req.PackageName)
}

func (m *Manager) runPrivileged(ctx context.Context, op, command, label string) core.Result {
	if m.gate != nil {
		if !m.gate.TryAcquire(label) {
			err := &Error{Op: op, Package: label, Err: ErrBusy}
			m.logger.Printf("⚠️ Rejected %s: %s holds the gate", label, m.gate.Holder())
			return core.Result{Message: err.Error()}
		}
		defer m.gate.Release()
	}

	m.logger.Printf("Running %s for %s: %s", op, label, command)
	return privileged.Collect(m.executor.Execute(ctx, command, label), m.hub.Publish)
}
