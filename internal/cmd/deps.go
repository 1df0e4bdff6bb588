package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/task"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Manage dependency edges",
}

var depsAddCmd = &cobra.Command{
	Use:   "add [from] [to]",
	Short: "Add a dependency edge",
	Long: `Record that [from] depends on [to]. The edge is rejected if either
endpoint is missing, if it already exists, or if it would close a
cycle; a rejected edge changes nothing.`,
	Args: cobra.ExactArgs(2),
	RunE: runDepsAdd,
}

var depsRemoveCmd = &cobra.Command{
	Use:   "remove [from] [to]",
	Short: "Remove a dependency edge",
	Args:  cobra.ExactArgs(2),
	RunE:  runDepsRemove,
}

func init() {
	rootCmd.AddCommand(depsCmd)
	depsCmd.AddCommand(depsAddCmd)
	depsCmd.AddCommand(depsRemoveCmd)
}

func parseEdge(args []string) (from, to task.Ref, err error) {
	if from, err = task.ParseRef(args[0]); err != nil {
		return
	}
	to, err = task.ParseRef(args[1])
	return
}

func runDepsAdd(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	from, to, err := parseEdge(args)
	if err != nil {
		return err
	}
	if err := eng.AddDependency(from, to); err != nil {
		return err
	}
	fmt.Printf("%s now depends on %s\n", from, to)
	return nil
}

func runDepsRemove(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	from, to, err := parseEdge(args)
	if err != nil {
		return err
	}
	if err := eng.RemoveDependency(from, to); err != nil {
		return err
	}
	fmt.Printf("%s no longer depends on %s\n", from, to)
	return nil
}
