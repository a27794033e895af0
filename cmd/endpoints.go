package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aiweb/catalog"

	"github.com/spf13/cobra"
)

var (
	endpointsJSON bool

	endpointsCmd = &cobra.Command{
		Use:   "endpoints [endpoint-id]",
		Short: "list endpoints or show one endpoint's documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEndpointsCmd,
	}
)

func init() {
	endpointsCmd.Flags().BoolVar(&endpointsJSON, "json", false, "print metadata as JSON")
	rootCmd.AddCommand(endpointsCmd)
}

func runEndpointsCmd(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		if endpointsJSON {
			return writeIndented(cmd, cat.List())
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tMETHOD\tPATH\tINPUTS\tNAME")
		for _, e := range cat.List() {
			inputs := make([]string, len(e.Inputs))
			for i, m := range e.Inputs {
				inputs[i] = string(m)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Method, e.Path, strings.Join(inputs, ","), e.Name)
		}
		return tw.Flush()
	}

	e, err := cat.Get(args[0])
	if err != nil {
		return err
	}
	if endpointsJSON {
		return writeIndented(cmd, e)
	}
	fmt.Fprintf(out, "%s - %s\n\n%s\n", e.Name, e.Description, catalog.Render(e))
	return nil
}

func writeIndented(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
