package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/store"
	"github.com/Iron-Ham/taskmill/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit [ref]",
	Short: "Edit task fields",
	Long: `Update the title, description, test strategy, or priority of a task
or subtask. Only the flags given are changed. Status and dependencies
have their own commands: set-status and deps.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var editFlags struct {
	title        string
	description  string
	testStrategy string
	priority     string
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editFlags.title, "title", "", "new title")
	editCmd.Flags().StringVarP(&editFlags.description, "description", "d", "", "new description")
	editCmd.Flags().StringVar(&editFlags.testStrategy, "test-strategy", "", "new test strategy")
	editCmd.Flags().StringVarP(&editFlags.priority, "priority", "p", "", "new priority")
}

func runEdit(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	ref, err := task.ParseRef(args[0])
	if err != nil {
		return err
	}

	var patch store.Patch
	if cmd.Flags().Changed("title") {
		patch.Title = &editFlags.title
	}
	if cmd.Flags().Changed("description") {
		patch.Description = &editFlags.description
	}
	if cmd.Flags().Changed("test-strategy") {
		patch.TestStrategy = &editFlags.testStrategy
	}
	if cmd.Flags().Changed("priority") {
		p := task.Priority(strings.ToLower(editFlags.priority))
		if !p.IsValid() {
			return fmt.Errorf("invalid priority %q (expected high, medium, or low)", editFlags.priority)
		}
		patch.Priority = &p
	}

	updated, err := eng.Update(ref, patch)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s: %s\n", ref, updated.Title)
	return nil
}
