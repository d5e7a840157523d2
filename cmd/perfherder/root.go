// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"golang.org/x/perfherder/perfherder"
)

func rootCmd() *cobra.Command {
	v := viper.New()
	logger := log.New()

	cmd := &cobra.Command{
		Use:           "perfherder",
		Short:         "perfherder builds Perfherder artifacts from raw performance results.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLogging(cmd, logger)
		},
	}
	cmd.PersistentFlags().String("log-level", "info", "log `level` (debug, info, warn, error)")

	cmd.AddCommand(
		runCmd(v, logger),
		checkMetricsCmd(),
		historyCmd(),
	)
	return cmd
}

func configureLogging(cmd *cobra.Command, logger *log.Logger) error {
	lvl, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(lvl)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

// loadConfig reads the session configuration from the configuration
// file named by the "config" key, if any, and the bound flags.
func loadConfig(v *viper.Viper) (perfherder.Config, error) {
	var cfg perfherder.Config
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return cfg, err
		}
	}
	err := v.Unmarshal(&cfg, viper.DecodeHook(singleMetricHook()))
	return cfg, err
}

// singleMetricHook decodes a configuration file that gives a single
// metric spec as a plain string. The spec is not split on its commas.
func singleMetricHook() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf([]string(nil)) {
			return data, nil
		}
		s := data.(string)
		if s == "" {
			return []string{}, nil
		}
		return []string{s}, nil
	}
}
