package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var clearSubtasksCmd = &cobra.Command{
	Use:   "clear-subtasks [id]",
	Short: "Remove all subtasks of a task",
	Long: `Remove every subtask of a task, along with any dependency edges
elsewhere in the graph that pointed at them.`,
	Args: cobra.ExactArgs(1),
	RunE: runClearSubtasks,
}

func init() {
	rootCmd.AddCommand(clearSubtasksCmd)
}

func runClearSubtasks(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return fmt.Errorf("invalid task id %q", args[0])
	}

	removed, err := eng.ClearSubtasks(id)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d subtask(s) from task %d\n", removed, id)
	return nil
}
