package cli

import (
	"fmt"

	"solar-match/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match <job-posting-id>",
	Short: "Rank available candidates against a job posting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runMatch(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Int("top-k", 0, "number of results to return (default from MATCH_TOP_K)")
	matchCmd.Flags().Float64("min-score", -1, "minimum aggregate score in [0,1]")
}

func runMatch(cmd *cobra.Command, rawID string) {
	container, lg := bootstrap()
	defer container.Close()

	jobID, err := uuid.Parse(rawID)
	if err != nil {
		lg.Fatal("invalid job posting id", zap.String("id", rawID), zap.Error(err))
	}

	params := usecase.MatchParams{
		TopK:     container.Config.Engine.TopK,
		MinScore: container.Config.Engine.MinScore,
	}
	if topK, _ := cmd.Flags().GetInt("top-k"); topK > 0 {
		params.TopK = topK
	}
	if minScore, _ := cmd.Flags().GetFloat64("min-score"); minScore >= 0 {
		params.MinScore = minScore
	}

	list, err := container.Matcher.MatchJob(cmd.Context(), jobID, params)
	if err != nil {
		lg.Fatal("matching failed", zap.String("job_id", jobID.String()), zap.Error(err))
	}

	if list.Status != usecase.StatusOK {
		fmt.Println(list.Status)
		return
	}

	fmt.Printf("top %d matches for job %s\n\n", len(list.Results), list.JobPostingID)
	for i, r := range list.Results {
		fmt.Printf("%2d. %-30s %5.1f%%  (%s)\n", i+1, r.CandidateName, r.Score*100, r.CandidateID)
		fmt.Printf("      skills %.2f | location %.2f | salary %.2f | experience %.2f | qualification %.2f\n",
			r.Breakdown.Skill, r.Breakdown.Location, r.Breakdown.Salary,
			r.Breakdown.Experience, r.Breakdown.Qualification)
		for _, reason := range r.Reasons {
			fmt.Printf("      - %s\n", reason)
		}
	}
}
