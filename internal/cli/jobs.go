package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List job postings open for matching",
	Run: func(cmd *cobra.Command, _ []string) {
		runJobs(cmd)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().Int("limit", 20, "maximum postings to list")
	jobsCmd.Flags().Int("offset", 0, "postings to skip")
}

func runJobs(cmd *cobra.Command) {
	container, lg := bootstrap()
	defer container.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	postings, err := container.Matcher.ListActiveJobs(cmd.Context(), limit, offset)
	if err != nil {
		lg.Fatal("listing postings failed", zap.Error(err))
	}

	if len(postings) == 0 {
		fmt.Println("no active postings")
		return
	}

	for _, p := range postings {
		fmt.Printf("%s  %-35s %s, %s\n", p.ID, p.Title, p.City, p.State)
	}
}
