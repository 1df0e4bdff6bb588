package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/task"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to the store. Dependencies supplied with --depends
are validated before anything is written: a cycle or a missing target
rejects the whole creation.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var addFlags struct {
	description  string
	details      string
	testStrategy string
	priority     string
	depends      []string
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addFlags.description, "description", "d", "", "what the task accomplishes")
	addCmd.Flags().StringVar(&addFlags.details, "details", "", "implementation notes")
	addCmd.Flags().StringVar(&addFlags.testStrategy, "test-strategy", "", "how completion will be verified")
	addCmd.Flags().StringVarP(&addFlags.priority, "priority", "p", "", "high, medium, or low (default from config)")
	addCmd.Flags().StringSliceVar(&addFlags.depends, "depends", nil, "refs this task depends on (e.g. 3,4.2)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	eng, cfg, err := openEngine()
	if err != nil {
		return err
	}

	t := task.Task{
		Title:        args[0],
		Description:  addFlags.description,
		Details:      addFlags.details,
		TestStrategy: addFlags.testStrategy,
		Priority:     cfg.DefaultPriority(),
	}
	if addFlags.priority != "" {
		p := task.Priority(strings.ToLower(addFlags.priority))
		if !p.IsValid() {
			return fmt.Errorf("invalid priority %q (expected high, medium, or low)", addFlags.priority)
		}
		t.Priority = p
	}

	var deps []task.Ref
	for _, raw := range addFlags.depends {
		ref, err := task.ParseRef(raw)
		if err != nil {
			return fmt.Errorf("invalid dependency %q: %w", raw, err)
		}
		deps = append(deps, ref)
	}

	id, err := eng.Create(t, deps)
	if err != nil {
		return err
	}

	fmt.Printf("Added task %d: %s\n", id, t.Title)
	if len(deps) > 0 {
		fmt.Printf("Depends on: %s\n", joinRefs(deps))
	}
	return nil
}

func joinRefs(refs []task.Ref) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
