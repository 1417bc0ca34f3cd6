// internal/cli/run.go
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run -- <command...>",
	Short: "Run a read-only command such as pacman -Qi",
	Long: `Run a command without a terminal window or privilege escalation and
print its output.

Examples:
  helstore run -- pacman -Qi bash
  helstore run -- yay -Si yay-bin`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := newManager().RunReadOnly(context.Background(), strings.Join(args, " "))

		fmt.Print(res.Output)
		if !res.Success {
			fmt.Fprint(os.Stderr, res.Stderr)
			return fmt.Errorf("%s", strings.TrimSpace(res.Message))
		}
		return nil
	},
}
