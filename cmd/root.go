// Package cmd provides the root command and CLI setup for docsight.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"docsight.dev/pkg/docsight/internal/adapter"
	"docsight.dev/pkg/docsight/internal/controller"
	"docsight.dev/pkg/docsight/internal/domain"
	m "docsight.dev/pkg/docsight/internal/model"
)

var sourceFSAdapter adapter.SourceFSAdapter
var docFSAdapter adapter.DocFSAdapter
var reportStore adapter.ReportStore
var extractor domain.Extractor
var evaluator domain.Evaluator
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// docRootFlag points at the markdown documentation tree, relative to the code root.
var docRootFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// verboseFlag switches logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	docFSAdapter = adapter.NewLocalDocFSAdapter()
	reportStore = adapter.NewReportStore()
	extractor = domain.NewExtractor()
	evaluator = domain.NewEvaluator()
	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		docFSAdapter,
		reportStore,
		ui,
		extractor,
		evaluator,
	)
}

const scanningHelp = `Scans JavaScript/TypeScript sources (.js, .jsx, .ts, .tsx), skipping
.git, dist, build and node_modules directories.`

const rootLongDescription = `Docsight estimates how well a codebase's public surface is described in
its markdown documentation. It pattern-matches likely declaration sites
(top-level bindings and function-like declarations), then checks whether
those names appear anywhere in the aggregated docs.

It is a heuristic auditor, not a parser: results are an estimate.

` + scanningHelp

const runLongDescription = `Audit documentation coverage for the given code roots (default: current
directory) against the markdown tree under --doc-root.

` + scanningHelp

const listLongDescription = `List source files and the number of extracted symbols per file.

` + scanningHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docsight",
		Short: "Markdown documentation coverage auditor",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for coverage reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&docRootFlag, docRootFlagName, "d", viper.GetString(docRootConfigKey), "markdown documentation folder, resolved relative to the code root")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(docRootFlagName), docRootConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
