package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/makerlab-backend/internal/seed"
)

func newCatalogCmd() *cobra.Command {
	var seedPath string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate a seed catalog and print a summary",
		Long: `Parses the seed catalog (the embedded one unless --seed is given), runs the
same validation the server does at startup and prints what it contains.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := seed.Load(seedPath)
			if err != nil {
				return err
			}
			return printCatalog(cmd.OutOrStdout(), catalog)
		},
	}
	cmd.Flags().StringVar(&seedPath, "seed", "", "path to a catalog YAML file")
	return cmd
}

func printCatalog(out io.Writer, c *seed.Catalog) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "LESSONS (%d)\n", len(c.Lessons))
	for _, l := range c.Lessons {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d steps\n", l.ID, l.Title, l.Difficulty, len(l.Steps))
	}

	fmt.Fprintf(tw, "PROJECTS (%d)\n", len(c.Projects))
	for _, p := range c.Projects {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d likes\n", p.ID, p.Title, p.Category, p.Likes)
	}

	fmt.Fprintf(tw, "MATERIALS (%d)\n", len(c.Materials))
	for _, m := range c.Materials {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", m.ID, m.Name, m.Category, m.Status)
	}

	fmt.Fprintf(tw, "SCHEDULE (%d days)\n", len(c.Schedule))
	for _, d := range c.Schedule {
		fmt.Fprintf(tw, "  %s\t%s\t%d items\n", d.Day, d.Date, len(d.Items))
	}

	return tw.Flush()
}
