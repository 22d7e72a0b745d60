package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/catalog"
)

// catalogCommand creates the catalog management command.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage catalogs in files and MongoDB",
	}

	cmd.AddCommand(c.catalogShowCommand())
	cmd.AddCommand(c.catalogInitCommand())
	cmd.AddCommand(c.catalogListCommand())
	cmd.AddCommand(c.catalogPushCommand())
	cmd.AddCommand(c.catalogPullCommand())

	return cmd
}

// catalogShowCommand creates the "catalog show" subcommand.
func (c *CLI) catalogShowCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := c.loadCatalog(cmd.Context(), cfg, path)
			if err != nil {
				return err
			}
			printKeyValue("Name", cat.Name)
			printKeyValue("Items", fmt.Sprint(len(cat.Items)))
			printKeyValue("Hash", cat.Hash()[:12])
			printNewline()
			for _, it := range cat.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", StyleNumber.Render(fmt.Sprintf("%3d", it.Index)), it.Source)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "catalog", "c", "", "catalog file (TOML)")
	return cmd
}

// catalogInitCommand creates the "catalog init" subcommand.
func (c *CLI) catalogInitCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "init <file.toml> [source...]",
		Short: "Write a catalog file from sources or the built-in catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			if len(args) > 1 {
				cat = catalog.FromSources(name, args[1:])
			}
			if err := cat.Validate(); err != nil {
				return err
			}
			if err := catalog.WriteFile(cat, args[0]); err != nil {
				return err
			}
			printSuccess("Wrote catalog %q with %d items", cat.Name, len(cat.Items))
			printFile(args[0])
			printNextStep("Render it", "carousel frame -c "+args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "custom", "catalog name when sources are given")
	return cmd
}

// catalogListCommand creates the "catalog list" subcommand.
func (c *CLI) catalogListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalogs stored in MongoDB",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.requireStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			names, err := store.Names(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No catalogs stored")
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

// catalogPushCommand creates the "catalog push" subcommand.
func (c *CLI) catalogPushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push <file.toml>",
		Short: "Store a catalog file in MongoDB, replacing any catalog of the same name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			store, err := c.requireStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			prog := newProgress(loggerFromContext(cmd.Context()))
			if err := store.Replace(cmd.Context(), cat); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Stored %d items", len(cat.Items)))
			printSuccess("Pushed catalog %q", cat.Name)
			return nil
		},
	}
}

// catalogPullCommand creates the "catalog pull" subcommand.
func (c *CLI) catalogPullCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pull <name> <file.toml>",
		Short: "Write a catalog stored in MongoDB to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.requireStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			cat, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := catalog.WriteFile(cat, args[1]); err != nil {
				return err
			}
			printSuccess("Pulled catalog %q with %d items", cat.Name, len(cat.Items))
			printFile(args[1])
			return nil
		},
	}
}

// requireStore opens the configured MongoDB store or explains how to set one up.
func (c *CLI) requireStore(cmd *cobra.Command) (*catalog.MongoStore, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Catalog.MongoURI == "" {
		return nil, fmt.Errorf("no catalog store configured: set catalog.mongo_uri in %s", c.configPathForDisplay())
	}
	return c.openStore(cmd.Context(), cfg)
}
