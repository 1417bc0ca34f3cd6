// internal/cli/install.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helwan-linux/helstore/pkg/core"
)

var (
	opSource  string
	opCommand string
)

var installCmd = &cobra.Command{
	Use:   "install [package...]",
	Short: "Install one or more packages",
	Long: `Install packages from the Arch repositories or the AUR.

Examples:
  helstore install firefox
  helstore install yay-bin --source=aur
  helstore install foo --command="pacman -S --needed foo"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(core.IntentInstall, args)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [package...]",
	Short: "Remove one or more packages",
	Long: `Remove installed packages.

Examples:
  helstore remove firefox
  helstore remove yay-bin --source=aur`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(core.IntentRemove, args)
	},
}

func init() {
	for _, c := range []*cobra.Command{installCmd, removeCmd} {
		c.Flags().StringVar(&opSource, "source", "arch", "package source (arch, aur)")
		c.Flags().StringVar(&opCommand, "command", "", "run this command instead of the derived one")
	}
}

func runOperation(intent core.Intent, args []string) error {
	ctx := context.Background()

	source, err := core.ParseSource(opSource)
	if err != nil {
		return err
	}
	if opCommand != "" && len(args) > 1 {
		return fmt.Errorf("--command applies to a single package")
	}

	m := newManager()

	failed := 0
	for _, name := range args {
		req := core.OperationRequest{PackageName: name, Source: source, Intent: intent, Command: opCommand}

		var res core.Result
		if intent == core.IntentRemove {
			res = m.Remove(ctx, req)
		} else {
			res = m.Install(ctx, req)
		}

		if !res.Success {
			fmt.Fprintf(os.Stderr, "✗ Failed to %s %s: %s\n", intent, name, res.Message)
			failed++
			continue
		}
		fmt.Println(res.Message)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d operations failed", failed, len(args))
	}
	return nil
}
