package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/saw/internal/app"
	"github.com/corey/saw/internal/domain/catalog"
)

var catalogDropForce bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the stored block and item catalog",
	Long: "The catalog lists the blocks, items, block tags and item tags that recipes\n" +
		"resolve against. It is imported from a YAML seed file and stored in the\n" +
		"catalog database under a name (--catalog).",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Validate a YAML catalog and store it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogImport,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored catalog as YAML",
	Args:  cobra.NoArgs,
	RunE:  runCatalogShow,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored catalog names",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the stored catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogDrop,
}

func init() {
	catalogDropCmd.Flags().BoolVarP(&catalogDropForce, "force", "f", false, "Skip confirmation prompt")

	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogDropCmd)
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cat, err := app.ImportCatalog(store, cfg.Catalog, args[0])
	if err != nil {
		return err
	}
	blocks, items, blockTags, itemTags := cat.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "%s⚡ catalog %q imported%s │ %d blocks │ %d items │ %d block tags │ %d item tags\n",
		colorBold, cfg.Catalog, colorReset, blocks, items, blockTags, itemTags)
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	data, err := store.LoadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	if data == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "⚡ no catalog named %q\n", cfg.Catalog)
		return nil
	}
	raw, err := catalog.MarshalYAML(data)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(raw)
	return err
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.ListCatalogs()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s⚡ %d catalogs%s\n", colorBold, len(names), colorReset)
	for _, name := range names {
		marker := " "
		if name == cfg.Catalog {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %s\n", marker, name)
	}
	return nil
}

func runCatalogDrop(cmd *cobra.Command, args []string) error {
	if !catalogDropForce {
		fmt.Fprintf(cmd.OutOrStdout(), "⚡ This will delete the stored catalog %q from %s\n", cfg.Catalog, cfg.DBPath)
		fmt.Fprint(cmd.OutOrStdout(), "  Continue? [y/N] ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "  Cancelled.")
			return nil
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteCatalog(cfg.Catalog); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "⚡ catalog %q dropped\n", cfg.Catalog)
	return nil
}
