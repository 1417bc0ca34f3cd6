// internal/cli/catalog.go
package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/helwan-linux/helstore/pkg/core"
	"github.com/helwan-linux/helstore/pkg/export"
)

var (
	catalogInstalled bool
	catalogSource    string
	catalogExport    string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List every package from the repositories and the AUR",
	Long: `Fetch the repository and AUR listings concurrently and print the merged
catalog. A package present in both appears once, with the AUR record.

Examples:
  helstore catalog --installed
  helstore catalog --source=aur
  helstore catalog --export=catalog.json.zst`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogInstalled, "installed", false, "only show installed packages")
	catalogCmd.Flags().StringVar(&catalogSource, "source", "", "only show packages from this source (arch, aur)")
	catalogCmd.Flags().StringVar(&catalogExport, "export", "", "write the catalog to a .json/.yaml/.toml file, optionally .zst/.xz/.gz compressed")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	var want core.Source
	if catalogSource != "" {
		s, err := core.ParseSource(catalogSource)
		if err != nil {
			return err
		}
		want = s
	}

	res := newManager().FetchCatalog(context.Background())
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	if res.Message != "" {
		colWarn.Printf("⚠️ %s\n", res.Message)
	}

	if catalogExport != "" {
		if err := export.WriteFile(catalogExport, export.FromCatalog(res.Packages)); err != nil {
			return err
		}
		fmt.Printf("✓ Exported %d packages to %s\n", res.Packages.Len(), catalogExport)
		return nil
	}

	pkgs := res.Packages.Packages()
	if catalogInstalled {
		pkgs = res.Packages.Installed()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	shown := 0
	for _, p := range pkgs {
		if want != "" && p.Source != want {
			continue
		}
		marker := ""
		if p.Installed {
			marker = "[installed]"
		}
		fmt.Fprintf(w, "%s/%s\t%s\t%s\n", p.Repo, p.Name, p.Version, marker)
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	counts := res.Packages.CountBySource()
	fmt.Printf("\n%d shown (%d Arch, %d AUR)\n", shown, counts[core.SourceRepository], counts[core.SourceCommunity])
	return nil
}
