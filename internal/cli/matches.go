package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var matchesCmd = &cobra.Command{
	Use:   "matches <job-posting-id>",
	Short: "Show the persisted ranking for a job posting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runMatches(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchesCmd)
}

func runMatches(cmd *cobra.Command, rawID string) {
	container, lg := bootstrap()
	defer container.Close()

	jobID, err := uuid.Parse(rawID)
	if err != nil {
		lg.Fatal("invalid job posting id", zap.String("id", rawID), zap.Error(err))
	}

	rows, err := container.Matcher.ListMatches(cmd.Context(), jobID)
	if err != nil {
		lg.Fatal("listing matches failed", zap.String("job_id", jobID.String()), zap.Error(err))
	}

	if len(rows) == 0 {
		fmt.Println("no matches stored for this posting; run `solar-match match` first")
		return
	}

	for i, m := range rows {
		fmt.Printf("%2d. %s  %5.1f%%\n", i+1, m.CandidateID, m.Score*100)
		for _, reason := range m.Reasons {
			fmt.Printf("      - %s\n", reason)
		}
	}
}
