package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show [ref]",
	Short: "Show full task or subtask detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	ref, err := task.ParseRef(args[0])
	if err != nil {
		return err
	}

	if ref.IsSubtask() {
		sub, err := eng.GetSubtask(ref)
		if err != nil {
			return err
		}
		parent, err := eng.Get(ref.Task)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s  %s\n", statusIcon(sub.Status), titleStyle.Render(ref.String()), sub.Title)
		fmt.Printf("Parent:   %d (%s)\n", parent.ID, parent.Title)
		printCommon(sub.Status, sub.Priority, sub.Dependencies, sub.Description, sub.Details, sub.TestStrategy)
		return nil
	}

	t, err := eng.Get(ref.Task)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s  %s\n", statusIcon(t.Status), titleStyle.Render(fmt.Sprintf("%d", t.ID)), t.Title)
	printCommon(t.Status, t.Priority, t.Dependencies, t.Description, t.Details, t.TestStrategy)
	if len(t.Subtasks) > 0 {
		fmt.Printf("Subtasks: %d of %d done\n", t.SubtasksDone(), len(t.Subtasks))
		for _, sub := range t.Subtasks {
			fmt.Printf("  %s %s  %s\n", statusIcon(sub.Status), task.SubRef(t.ID, sub.Index), sub.Title)
		}
	}
	return nil
}

func printCommon(st task.Status, p task.Priority, deps []task.Ref, description, details, strategy string) {
	fmt.Printf("Status:   %s\n", st)
	fmt.Printf("Priority: %s\n", priorityLabel(p))
	if len(deps) > 0 {
		fmt.Printf("Depends:  %s\n", joinRefs(deps))
	}
	if description != "" {
		fmt.Printf("\n%s\n", description)
	}
	if details != "" {
		fmt.Printf("\nDetails:\n%s\n", details)
	}
	if strategy != "" {
		fmt.Printf("\nTest strategy: %s\n", strategy)
	}
}
