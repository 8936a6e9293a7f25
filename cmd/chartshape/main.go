// Package main provides the CLI entry point for chartshape-go.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/chartshape-go/internal/config"
	"github.com/ukaji3/chartshape-go/internal/logging"
)

var (
	configFile   string
	outputPath   string
	pretty       bool
	workbookPath string
	shapeIndex   int

	cfg        config.Config
	closeLogFn func()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chartshape",
		Short: "Import, inspect and render embeddable charts",
		Long: `chartshape-go builds chart shapes from xlsx workbooks, stores them as
OpenDocument chart packages and renders them as SVG or PNG images.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if closeLogFn != nil {
				closeLogFn()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file (yaml, toml or json)")
	config.DefineFlags(rootCmd)

	rootCmd.AddCommand(newImportCmd(), newInspectCmd(), newRenderCmd())
	return rootCmd
}

func setup(cmd *cobra.Command, _ []string) error {
	c, meta, err := config.GetConfig(cmd, configFile)
	if err != nil {
		return err
	}
	closeFn, err := logging.Setup(c.Log)
	if err != nil {
		return err
	}
	closeLogFn = closeFn
	if meta.FileNotFound {
		return fmt.Errorf("config file not found: %s", configFile)
	}
	for _, key := range meta.UnknownKeys {
		log.Warn().Str("key", key).Msg("unknown key found in the configuration file")
	}
	cfg = c
	return nil
}
