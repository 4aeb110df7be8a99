// Copyright 2025 The ambari-mcp-server Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command ambari-mcp-server exposes an Apache Ambari cluster as MCP tools
// and resources over stdio or streamable HTTP.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikita15p/ambari-mcp-server/internal/ambari"
	"github.com/nikita15p/ambari-mcp-server/internal/config"
	"github.com/nikita15p/ambari-mcp-server/internal/log"
	"github.com/nikita15p/ambari-mcp-server/internal/server"
)

const serverName = "ambari-mcp-server"

var (
	flagConfig      string
	flagHTTP        string
	flagMetricsAddr string
	flagLogLevel    string
	flagLogFormat   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   serverName,
		Short: "MCP server for Apache Ambari cluster management",
		Long: serverName + ` bridges the Model Context Protocol to the Apache
Ambari REST API, exposing cluster, service, host, and alert management as
discoverable tools and resources.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to an optional YAML config file")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: json, text")
	root.Flags().StringVar(&flagHTTP, "http", "", "serve MCP over streamable HTTP on this address instead of stdio")
	root.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (default)",
		RunE:  runServe,
	}
	serve.Flags().StringVar(&flagHTTP, "http", "", "serve MCP over streamable HTTP on this address instead of stdio")
	serve.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n", serverName, ambari.Version)
		},
	}

	root.AddCommand(serve, version)
	return root
}

func runServe(cmd *cobra.Command, args []string) error {
	logCfg := log.FromEnv()
	if flagLogLevel != "" {
		logCfg.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		logCfg.Format = log.Format(flagLogFormat)
	}
	logger := log.New(logCfg)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	for _, warning := range cfg.Warnings() {
		logger.Warn(warning)
	}

	srv, err := server.New(server.Options{
		Name:    serverName,
		Version: ambari.Version,
		Ambari:  cfg,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if flagMetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", srv.MetricsHandler())
			logger.Info("metrics listener starting", "addr", flagMetricsAddr)
			if err := http.ListenAndServe(flagMetricsAddr, mux); err != nil {
				logger.Error("metrics listener stopped", log.Error(err))
			}
		}()
	}

	if flagHTTP != "" {
		return srv.ServeHTTP(flagHTTP)
	}
	return srv.ServeStdio()
}
