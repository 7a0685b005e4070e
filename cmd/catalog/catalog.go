package catalog

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/odontosys/odontosys/internal/catalog"
)

// Command creates the command that lists the treatment catalog.
func Command() *cobra.Command {
	var category string
	var query string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the treatment catalog",
		Long:  "Print the treatment catalog, optionally filtered by category or search text.",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := catalog.Search(query, catalog.Category(category))
			if len(entries) == 0 {
				fmt.Println("no matching treatments")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tSIGLA\tCATEGORY\tEXISTING\tPLANNED")
			for i := range entries {
				e := &entries[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%v\n",
					e.Code, e.Name, e.Sigla, e.Category, e.AllowsExisting, e.AllowsPlanned)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", string(catalog.CategoryAll), "Filter by category")
	cmd.Flags().StringVar(&query, "search", "", "Filter by name, code or sigla")

	return cmd
}
