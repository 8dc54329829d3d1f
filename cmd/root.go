/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnunite/internal/iofs"
	"github.com/gnames/gnunite/internal/iologger"
	app "github.com/gnames/gnunite/pkg"
	"github.com/gnames/gnunite/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd creates the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnunite",
		Short:   "GNunite fetches UNITE reference data",
		Long: `GNunite downloads UNITE fungal and eukaryotic reference releases and
imports their taxonomy and sequence files into a local artifact store.

A release is selected by version, taxon group and the singletons
variant. Files inside of the release are filtered by cluster id
(similarity threshold, for example 99, 97 or dynamic).

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNUNITE_*)
  3. Config file (~/.config/gnunite/config.yaml)
  4. Built-in defaults

Environment Variables:
  GNUNITE_UNITE_VERSION           UNITE release version
  GNUNITE_UNITE_TAXON_GROUP       fungi or eukaryotes
  GNUNITE_UNITE_CLUSTER_ID        cluster id of imported files
  GNUNITE_UNITE_SINGLETONS        true to include singletons
  GNUNITE_DOWNLOAD_RETRIES        number of download attempts
  GNUNITE_ARTIFACTS_DIR           location of the artifact store
  GNUNITE_LOG_LEVEL               log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnunite version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnunite")

	rootCmd.AddCommand(
		getGetCmd(),
		getDoisCmd(),
		getArtifactsCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if logCloser, err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	closeLog()
	var err error
	logDir := config.LogDir(cfg.HomeDir)
	logCloser, err = iologger.Init(logDir, cfg.Log)
	return err
}

func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNUNITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// UNITE release
	v.BindEnv("unite.version", "GNUNITE_UNITE_VERSION")
	v.BindEnv("unite.taxon_group", "GNUNITE_UNITE_TAXON_GROUP")
	v.BindEnv("unite.cluster_id", "GNUNITE_UNITE_CLUSTER_ID")
	v.BindEnv("unite.singletons", "GNUNITE_UNITE_SINGLETONS")

	// Download configuration
	v.BindEnv("download.metadata_url", "GNUNITE_DOWNLOAD_METADATA_URL")
	v.BindEnv("download.retries", "GNUNITE_DOWNLOAD_RETRIES")
	v.BindEnv("download.chunk_size", "GNUNITE_DOWNLOAD_CHUNK_SIZE")
	v.BindEnv("download.timeout", "GNUNITE_DOWNLOAD_TIMEOUT")
	v.BindEnv("download.backoff_base", "GNUNITE_DOWNLOAD_BACKOFF_BASE")
	v.BindEnv("download.backoff_max", "GNUNITE_DOWNLOAD_BACKOFF_MAX")

	// Artifact store
	v.BindEnv("artifacts.dir", "GNUNITE_ARTIFACTS_DIR")

	// Log configuration
	v.BindEnv("log.level", "GNUNITE_LOG_LEVEL")
	v.BindEnv("log.format", "GNUNITE_LOG_FORMAT")
	v.BindEnv("log.destination", "GNUNITE_LOG_DESTINATION")

	v.AutomaticEnv()
}
