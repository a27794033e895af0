package cmd

import (
	"github.com/aiweb/blob"
	"github.com/aiweb/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "serve the endpoint browser",
		RunE:  runServeCmd,
	}
)

func init() {
	serveCmd.Flags().String("addr", "", "listen address")
	cobra.CheckErr(viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr")))
	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	store := blob.NewMemoryStore("/blobs/")
	c, err := newClient(conf, store)
	if err != nil {
		return err
	}

	api := server.NewAPI(c, cat, store, conf.Server.MaxUpload)
	return server.NewServer(&conf.Server, server.SetupRoutes(api)).Run()
}
