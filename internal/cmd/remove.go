package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a task",
	Long: `Remove a task and its subtasks. Fails if other tasks depend on it
unless --cascade is given, in which case the dangling dependency edges
are removed and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

var removeCascade bool

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().BoolVar(&removeCascade, "cascade", false, "also remove dependency edges pointing at the task")
}

func runRemove(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return fmt.Errorf("invalid task id %q", args[0])
	}

	pruned, err := eng.Delete(id, removeCascade)
	if err != nil {
		return err
	}

	fmt.Printf("Removed task %d\n", id)
	for _, edge := range pruned {
		fmt.Printf("  dropped dependency %s\n", edge)
	}
	return nil
}
