package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/task"
)

var setStatusCmd = &cobra.Command{
	Use:   "set-status [ref] [status]",
	Short: "Change the status of a task or subtask",
	Long: `Set the status of a task or subtask. The built-in statuses are
pending, in-progress, done, and deferred; any other non-empty label is
stored as-is but never counts as completed for dependency checks.`,
	Args: cobra.ExactArgs(2),
	RunE: runSetStatus,
}

func init() {
	rootCmd.AddCommand(setStatusCmd)
}

func runSetStatus(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	ref, err := task.ParseRef(args[0])
	if err != nil {
		return err
	}

	change, err := eng.SetStatus(ref, args[1])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s -> %s\n", change.Ref, change.From, change.To)
	if !change.To.Known() {
		fmt.Println(mutedStyle.Render("note: custom status, will not satisfy dependencies"))
	}
	return nil
}
