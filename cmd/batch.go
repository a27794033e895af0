package cmd

import (
	"context"
	"os"

	"github.com/aiweb/catalog"
	"github.com/aiweb/client"
	"github.com/aiweb/stdio"
	"github.com/aiweb/validate"

	"github.com/spf13/cobra"
)

var (
	batchCmd = &cobra.Command{
		Use:   "batch",
		Short: "run NDJSON requests from stdin, one reply per line on stdout",
		Long: `Each input line is {"id": "...", "endpoint": "<endpoint-id>", "text": "...",
"json": <value or string>, "files": ["path", ...]}. Binary results are kept
in the blob directory and reported by file:// URL.`,
		Args: cobra.NoArgs,
		RunE: runBatchCmd,
	}
)

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	store, err := openBlobDir(conf)
	if err != nil {
		return err
	}
	c, err := newClient(conf, store)
	if err != nil {
		return err
	}

	return stdio.Run(cmd.Context(), os.Stdin, cmd.OutOrStdout(), batchHandler(c, cat))
}

func batchHandler(c *client.Client, cat *catalog.Catalog) stdio.Handler {
	return func(ctx context.Context, req stdio.Request) stdio.Reply {
		e, err := cat.Get(req.Endpoint)
		if err != nil {
			return stdio.Reply{Error: err.Error()}
		}
		files, err := readFiles(req.Files)
		if err != nil {
			return stdio.Reply{Error: err.Error()}
		}

		raw := req.JSONInput()
		warnings := validate.CheckJSONInput(e.Schema, raw)
		res, err := c.Call(ctx, e.Payload(req.Text, raw, files))
		if err != nil {
			return stdio.Reply{Warnings: warnings, Error: err.Error()}
		}
		return stdio.Reply{OK: true, Result: res, Warnings: warnings}
	}
}
