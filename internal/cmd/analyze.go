package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score task complexity",
	Long: `Score every task on a 1-10 complexity scale and recommend a subtask
count for tasks worth breaking down. The heuristic weighs description
length, distinct action verbs, enumerated steps, and existing subtasks.`,
	RunE: runAnalyze,
}

var analyzeFlags struct {
	json bool
	out  string
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeFlags.json, "json", false, "emit the report as JSON")
	analyzeCmd.Flags().StringVar(&analyzeFlags.out, "out", "", "also write the JSON report to a file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	report := eng.Analyze()

	if analyzeFlags.out != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if dir := filepath.Dir(analyzeFlags.out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		if err := os.WriteFile(analyzeFlags.out, append(data, '\n'), 0o644); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", analyzeFlags.out)
	}

	if analyzeFlags.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if len(report.Tasks) == 0 {
		fmt.Println("No tasks to analyze")
		return nil
	}

	for _, c := range report.Tasks {
		bar := complexityBar(c.Score)
		fmt.Printf("%3d  %s %2d/10  %s", c.TaskID, bar, c.Score, c.Title)
		if c.Score > 3 && c.SubtaskCount == 0 {
			fmt.Printf("  %s", mutedStyle.Render(fmt.Sprintf("(suggest %d subtasks)", c.RecommendedSubtasks)))
		}
		fmt.Println()
	}
	fmt.Printf("\n%d tasks: %d low, %d medium, %d high\n",
		report.Stats.Total, report.Stats.Low, report.Stats.Medium, report.Stats.High)
	return nil
}

func complexityBar(score int) string {
	switch {
	case score <= 3:
		return doneStyle.Render("▂")
	case score <= 7:
		return progressStyle.Render("▅")
	default:
		return errorStyle.Render("█")
	}
}
