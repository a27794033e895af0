package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/aiweb/auth"
	"github.com/aiweb/blob"
	"github.com/aiweb/catalog"
	"github.com/aiweb/client"
	"github.com/aiweb/config"
	"github.com/aiweb/logger"
	"github.com/aiweb/transport"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgfile string

	rootCmd = &cobra.Command{
		Use:   "aiweb",
		Short: "Browse and call the AI tool endpoints",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init()
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgfile, "config", "", "config file (default $HOME/.aiweb.yaml)")
	flags.String("base-url", "", "backend base URL")
	flags.Duration("timeout", 0, "backend call timeout")
	flags.String("blob-dir", "", "directory for binary results")

	cobra.CheckErr(viper.BindPFlag("base_url", flags.Lookup("base-url")))
	cobra.CheckErr(viper.BindPFlag("timeout", flags.Lookup("timeout")))
	cobra.CheckErr(viper.BindPFlag("blob_dir", flags.Lookup("blob-dir")))
}

func initConfig() {
	if cfgfile != "" {
		viper.SetConfigFile(cfgfile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".aiweb")
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %v\n", viper.ConfigFileUsed())
	} else if cfgfile != "" {
		cobra.CheckErr(err)
	}
}

// loadConfig reads the merged flag/env/file settings. Unset flags keep the
// defaults because BindPFlag only overrides when a flag was changed.
func loadConfig() (*config.Conf, error) {
	return config.Load(viper.GetViper())
}

func loadCatalog() (*catalog.Catalog, error) {
	return catalog.FromViper(viper.GetViper())
}

// newClient builds the single process-wide transport and the marshaler on
// top of it.
func newClient(conf *config.Conf, store blob.Store) (*client.Client, error) {
	opts := []transport.Option{transport.WithTimeout(conf.Timeout)}
	if conf.Secret != "" {
		tok := auth.NewT(auth.WithSecret([]byte(conf.Secret)))
		opts = append(opts, transport.WithTokenSource(tok.TokenSource("aiweb")))
	}

	tr, err := transport.NewHTTPClient(conf.BaseURL, opts...)
	if err != nil {
		return nil, err
	}
	return client.New(tr, store), nil
}

// openBlobDir returns the configured blob directory store, or a fresh
// temporary one.
func openBlobDir(conf *config.Conf) (*blob.DirStore, error) {
	dir := conf.BlobDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "aiweb-blobs-")
		if err != nil {
			return nil, fmt.Errorf("failed to create blob directory: %w", err)
		}
		dir = tmp
	}
	return blob.NewDirStore(dir)
}

func Execute() {
	err := rootCmd.Execute()
	logger.Close()
	if err != nil {
		log.Fatal(err)
	}
}
