package main

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/siherrmann/speechgraph/helper"
	"github.com/siherrmann/speechgraph/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "SPEECHGRAPH"

// NewRootCmd creates the root speechgraph command with all subcommands registered
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "speechgraph",
		Short:         "Build a knowledge graph from transcribed speech",
		Long:          "speechgraph extracts people, places, organizations and concepts from transcript text and accumulates them into a graph.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initViper(cmd, v)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().String("env-file", ".env", "path to a .env file, ignored when missing")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("extract-interim", false, "also extract entities from interim segments")

	root.AddCommand(
		newIngestCmd(v),
		newServeCmd(v),
		newVersionCmd(),
	)

	return root
}

// initViper applies defaults, .env, config file, env and flags so the
// precedence is flag > env > file > defaults.
func initViper(cmd *cobra.Command, v *viper.Viper) error {
	if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return helper.NewError("load env file", err)
		}
	}

	defaults := model.DefaultConfig()
	v.SetDefault("extract_interim", defaults.ExtractInterim)
	v.SetDefault("listen", defaults.Listen)
	v.SetDefault("cors_origins", defaults.CORSOrigins)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return helper.NewError("read config file", err)
		}
	}

	bindings := map[string]string{
		"log_level":       "log-level",
		"extract_interim": "extract-interim",
		"listen":          "listen",
		"cors_origins":    "cors-origin",
	}
	for key, flag := range bindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return helper.NewError("bind flag "+flag, err)
			}
		}
	}

	return nil
}

// loadConfig decodes the resolved settings into a model.Config
func loadConfig(v *viper.Viper) (model.Config, error) {
	var config model.Config
	if err := v.Unmarshal(&config); err != nil {
		return config, helper.NewError("unmarshal config", err)
	}
	if _, err := config.SlogLevel(); err != nil {
		return config, helper.NewError("validate config", err)
	}
	return config, nil
}
