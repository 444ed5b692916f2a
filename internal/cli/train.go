package cli

import (
	"errors"
	"fmt"
	"time"

	"solar-match/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the placement model from the full candidate pool",
	Run: func(cmd *cobra.Command, _ []string) {
		runTrain(cmd)
	},
}

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Show the currently trained model bundle",
	Run: func(cmd *cobra.Command, _ []string) {
		runModel(cmd)
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(modelCmd)
}

func runTrain(cmd *cobra.Command) {
	container, lg := bootstrap()
	defer container.Close()

	model, err := container.Trainer.Train(cmd.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrTrainingInProgress) {
			lg.Fatal("another training run is already in progress")
		}
		lg.Fatal("training failed", zap.Error(err))
	}

	fmt.Printf("trained on %d candidates (%d features), bundle saved to %s\n",
		model.SampleCount, len(model.FeatureColumns), container.Config.Engine.ModelDir)
}

func runModel(cmd *cobra.Command) {
	container, lg := bootstrap()
	defer container.Close()

	info, err := container.Trainer.Info()
	if err != nil {
		if errors.Is(err, usecase.ErrModelNotTrained) {
			fmt.Println("no model trained yet; run `solar-match train`")
			return
		}
		lg.Fatal("model status failed", zap.Error(err))
	}

	fmt.Printf("trained at:      %s\n", info.TrainedAt.Format(time.RFC3339))
	fmt.Printf("samples:         %d\n", info.SampleCount)
	fmt.Printf("feature columns: %d\n", info.FeatureColumns)
	fmt.Printf("neighbors:       %d\n", info.Neighbors)
	fmt.Printf("training seed:   %d\n", info.Seed)
}
