package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"docsight.dev/pkg/docsight/internal/domain"
	m "docsight.dev/pkg/docsight/internal/model"
)

var runFailUnderFlag float64
var runShardFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Audit documentation coverage",
		Long:  runLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			shardIndex, totalShards := parseShardFlag(runShardFlag)

			return workflow.Audit(context.Background(), domain.AuditArgs{
				Paths:      parsePaths(args),
				DocRoot:    m.Path(viper.GetString(docRootConfigKey)),
				Exclude:    viper.GetStringSlice(excludeConfigKey),
				Reports:    m.Path(viper.GetString(outputFlagName)),
				FailUnder:  viper.GetFloat64(failUnderConfigKey),
				ShardIndex: shardIndex,
				ShardCount: totalShards,
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&runFailUnderFlag, failUnderFlagName, viper.GetFloat64(failUnderConfigKey), "fail when overall coverage is below this percentage")
	bindFlagToConfig(cmd.Flags().Lookup(failUnderFlagName), failUnderConfigKey)
	cmd.Flags().StringVarP(&runShardFlag, "shard", "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
