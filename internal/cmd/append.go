package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/task"
)

var appendCmd = &cobra.Command{
	Use:   "append [ref] [note]",
	Short: "Append a note to a task's details",
	Long: `Append an implementation note to the details of a task or subtask.
Details only grow; earlier notes are never rewritten.`,
	Args: cobra.ExactArgs(2),
	RunE: runAppend,
}

func init() {
	rootCmd.AddCommand(appendCmd)
}

func runAppend(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	ref, err := task.ParseRef(args[0])
	if err != nil {
		return err
	}

	if err := eng.AppendDetails(ref, args[1]); err != nil {
		return err
	}
	fmt.Printf("Appended note to %s\n", ref)
	return nil
}
