package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var similarCmd = &cobra.Command{
	Use:   "similar <candidate-id>",
	Short: "Find candidates most similar to the given one",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSimilar(cmd, args[0])
	},
}

var likelihoodCmd = &cobra.Command{
	Use:   "likelihood <candidate-id>",
	Short: "Estimate a candidate's placement likelihood",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runLikelihood(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(likelihoodCmd)

	similarCmd.Flags().Int("k", 0, "number of neighbors to return (default from MODEL_NEIGHBORS)")
}

func runSimilar(cmd *cobra.Command, rawID string) {
	container, lg := bootstrap()
	defer container.Close()

	candidateID, err := uuid.Parse(rawID)
	if err != nil {
		lg.Fatal("invalid candidate id", zap.String("id", rawID), zap.Error(err))
	}

	k, _ := cmd.Flags().GetInt("k")
	if k <= 0 {
		k = container.Config.Engine.Neighbors
	}

	similar, err := container.Insights.SimilarCandidates(cmd.Context(), candidateID, k)
	if err != nil {
		lg.Fatal("similarity lookup failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
	}

	fmt.Printf("%d candidates similar to %s\n\n", len(similar), candidateID)
	for i, s := range similar {
		fmt.Printf("%2d. %s  similarity %.3f\n", i+1, s.CandidateID, s.Similarity)
	}
}

func runLikelihood(cmd *cobra.Command, rawID string) {
	container, lg := bootstrap()
	defer container.Close()

	candidateID, err := uuid.Parse(rawID)
	if err != nil {
		lg.Fatal("invalid candidate id", zap.String("id", rawID), zap.Error(err))
	}

	p, err := container.Insights.PlacementLikelihood(cmd.Context(), candidateID)
	if err != nil {
		lg.Fatal("likelihood lookup failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
	}

	fmt.Printf("placement likelihood for %s: %.1f%%\n", candidateID, p*100)
}
