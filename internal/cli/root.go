// internal/cli/root.go
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/helwan-linux/helstore"
	"github.com/helwan-linux/helstore/pkg/core"
)

var (
	cfgFile   string
	helper    string
	terminal  string
	debug     bool
	exclusive bool
	config    *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "helstore",
	Short: "Helwan package store engine",
	Long: `helstore - browse, install and remove packages from the Arch
repositories and the AUR.

Read-only queries run directly. Install, remove, sync and upgrade run in a
terminal window with sudo so the password prompt and pacman's questions stay
interactive.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/helstore/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&helper, "helper", "", "AUR helper to use (yay, paru)")
	rootCmd.PersistentFlags().StringVar(&terminal, "terminal", "", `terminal prefix for privileged commands, "none" to run inline`)
	rootCmd.PersistentFlags().BoolVar(&exclusive, "exclusive", false, "refuse to start a privileged operation while another is running")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(updatesCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if helper != "" {
		config.Helper = helper
	}
	if terminal != "" {
		config.Terminal = terminal
	}
	if exclusive {
		config.Exclusive = true
	}
	if debug {
		config.Debug = true
	}
}

func newLogger() *log.Logger {
	if config.Debug {
		return log.New(os.Stderr, "[HELSTORE] ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// newManager builds the engine and attaches the terminal renderer
func newManager() *helstore.Manager {
	m := helstore.New(config, helstore.WithLogger(newLogger()))
	m.OnProgress(newRenderer(os.Stdout).Handle)

	if config.Debug {
		if p := m.Platform(); p != nil {
			fmt.Printf("Platform: %s\n", p)
		}
	}
	return m
}
