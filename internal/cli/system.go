// internal/cli/system.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helwan-linux/helstore/pkg/core"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the package databases (pacman -Syy)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(newManager().SyncDatabases(context.Background()))
	},
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the whole system (pacman -Syu)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(newManager().FullUpgrade(context.Background()))
	},
}

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "List packages with pending updates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res := newManager().CheckForUpdates(context.Background())
		if !res.UpdatesAvailable {
			colInfo.Println(res.Message)
			return nil
		}

		colInfo.Printf("%d system updates available:\n", res.UpdateCount)
		for _, line := range res.UpdateList {
			fmt.Printf("  %s\n", line)
		}
		return nil
	},
}

func report(res core.Result) error {
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Println(res.Message)
	return nil
}
