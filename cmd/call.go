package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aiweb/codec"
	"github.com/aiweb/validate"

	"github.com/spf13/cobra"
)

var (
	callText  string
	callJSON  string
	callFiles []string
	callOut   string

	callCmd = &cobra.Command{
		Use:   "call <endpoint-id>",
		Short: "call one endpoint and print the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runCallCmd,
	}
)

func init() {
	callCmd.Flags().StringVar(&callText, "text", "", "text input")
	callCmd.Flags().StringVar(&callJSON, "json", "", "raw json input")
	callCmd.Flags().StringArrayVar(&callFiles, "file", nil, "file to upload (repeatable)")
	callCmd.Flags().StringVarP(&callOut, "out", "o", "", "write a binary result to this path")
	rootCmd.AddCommand(callCmd)
}

func runCallCmd(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	e, err := cat.Get(args[0])
	if err != nil {
		return err
	}

	files, err := readFiles(callFiles)
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

	for _, w := range validate.CheckJSONInput(e.Schema, callJSON) {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}

	res, err := c.Call(cmd.Context(), e.Payload(callText, callJSON, files))
	if err != nil {
		return err
	}
	return printResult(cmd, res, store.Path)
}

func printResult(cmd *cobra.Command, res *codec.ParsedResponse, path func(string) (string, bool)) error {
	out := cmd.OutOrStdout()
	switch res.Kind {
	case codec.KindJSON:
		fmt.Fprintln(out, codec.PrettyJSON(res.Data))
		return nil
	case codec.KindText:
		fmt.Fprintln(out, res.Data)
		return nil
	}

	if callOut != "" {
		if err := os.WriteFile(callOut, res.Blob.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", callOut, err)
		}
		fmt.Fprintf(out, "%s (%s, %d bytes) written to %s\n", res.Kind, res.MimeType, res.Blob.Size(), callOut)
		return res.Release()
	}

	if p, ok := path(res.Blob.ID); ok {
		fmt.Fprintf(out, "%s (%s, %d bytes) saved to %s\n", res.Kind, res.MimeType, res.Blob.Size(), p)
		return nil
	}
	fmt.Fprintln(out, res.Data)
	return nil
}

// readFiles loads upload files in the order given.
func readFiles(paths []string) ([]codec.File, error) {
	files := make([]codec.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		files = append(files, codec.File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}
