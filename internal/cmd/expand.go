package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/advisor"
)

var expandCmd = &cobra.Command{
	Use:   "expand [id]",
	Short: "Break a task into subtasks",
	Long: `Append subtasks to a task. With --title flags the given titles are
used; otherwise placeholder subtasks are generated, defaulting to the
count the complexity analysis recommends.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

var expandFlags struct {
	num    int
	titles []string
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().IntVarP(&expandFlags.num, "num", "n", 0, "number of subtasks (default from complexity score)")
	expandCmd.Flags().StringArrayVar(&expandFlags.titles, "title", nil, "subtask title (repeatable, overrides --num)")
}

func runExpand(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return fmt.Errorf("invalid task id %q", args[0])
	}

	var drafts []advisor.Draft
	if len(expandFlags.titles) > 0 {
		for _, title := range expandFlags.titles {
			drafts = append(drafts, advisor.Draft{Title: title})
		}
	} else {
		n := expandFlags.num
		if n <= 0 {
			score, err := eng.Score(id)
			if err != nil {
				return err
			}
			n = advisor.RecommendedSubtasks(score)
		}
		for i := 1; i <= n; i++ {
			drafts = append(drafts, advisor.Draft{Title: fmt.Sprintf("Step %d", i)})
		}
	}

	refs, err := eng.Expand(id, drafts)
	if err != nil {
		return err
	}

	fmt.Printf("Added %d subtask(s) to task %d:\n", len(refs), id)
	for i, ref := range refs {
		fmt.Printf("  %s  %s\n", ref, drafts[i].Title)
	}
	return nil
}
