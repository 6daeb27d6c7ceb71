/*
Copyright 2022 The l7mp/stunner team.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/l7mp/rxcollections/internal/buildinfo"
	"github.com/l7mp/rxcollections/internal/scenario"
	"github.com/l7mp/rxcollections/pkg/metrics"
	"github.com/l7mp/rxcollections/pkg/visualize"
)

var (
	version    = "dev"
	commitHash = "n/a"
	buildDate  = "<unknown>"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	zapOpts := zap.Options{
		Development:     true,
		DestWriter:      os.Stderr,
		StacktraceLevel: zapcore.Level(3),
		TimeEncoder:     zapcore.RFC3339NanoTimeEncoder,
	}
	var logger logr.Logger

	rootCmd := &cobra.Command{
		Use:          "collectionctl",
		Short:        "Run observable collection scenarios",
		Long:         "collectionctl builds a pipeline of collection operators from a scenario file, applies the scenario mutations and prints every notification of the output.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = zap.New(zap.UseFlagOptions(&zapOpts)).WithName("collectionctl")
		},
	}
	fs := flag.NewFlagSet("zap", flag.ContinueOnError)
	zapOpts.BindFlags(fs)
	rootCmd.PersistentFlags().AddGoFlagSet(fs)
	rootCmd.SetOut(out)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			dumpMetrics, _ := cmd.Flags().GetBool("metrics")

			s, err := scenario.Load(file)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			m := metrics.New()
			if err := m.Register(reg); err != nil {
				return err
			}

			setupLog := logger.WithName("setup")
			setupLog.Info(fmt.Sprintf("running scenario %s", file), "sources", len(s.Sources),
				"stages", len(s.Pipeline), "steps", len(s.Steps))

			if err := s.Run(cmd.OutOrStdout(), scenario.Options{Logger: logger, Metrics: m}); err != nil {
				setupLog.Error(err, "scenario failed")
				return err
			}

			if dumpMetrics {
				return writeMetrics(cmd.OutOrStdout(), reg)
			}
			return nil
		},
	}
	runCmd.Flags().StringP("file", "f", "", "Scenario file (YAML or JSON)")
	runCmd.Flags().Bool("metrics", false, "Print the collected metrics after the run")
	_ = runCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(runCmd)

	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the pipeline of a scenario file as a diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			format, _ := cmd.Flags().GetString("output")

			gen, err := visualize.NewGenerator(format)
			if err != nil {
				return err
			}
			s, err := scenario.Load(file)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), gen.Generate(s.Diagram(filepath.Base(file))))
			return err
		},
	}
	graphCmd.Flags().StringP("file", "f", "", "Scenario file (YAML or JSON)")
	graphCmd.Flags().StringP("output", "o", "dot", "Diagram format: dot or mermaid")
	_ = graphCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(graphCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.New(version, commitHash, buildDate).String())
		},
	}
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
