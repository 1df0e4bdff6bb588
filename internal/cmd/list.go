package cmd

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/store"
	"github.com/Iron-Ham/taskmill/internal/task"
	"github.com/Iron-Ham/taskmill/internal/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks ordered by id. Filters combine: a task must match every
filter given. The title filter is a glob pattern matched against the
whole title.`,
	RunE: runList,
}

var listFlags struct {
	statuses     []string
	priorities   []string
	title        string
	withSubtasks bool
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringSliceVarP(&listFlags.statuses, "status", "s", nil, "filter by status (repeatable)")
	listCmd.Flags().StringSliceVarP(&listFlags.priorities, "priority", "p", nil, "filter by priority (repeatable)")
	listCmd.Flags().StringVarP(&listFlags.title, "title", "t", "", "filter by title glob (e.g. '*auth*')")
	listCmd.Flags().BoolVar(&listFlags.withSubtasks, "with-subtasks", false, "show subtasks under each task")
}

func runList(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	var filter store.Filter
	for _, s := range listFlags.statuses {
		filter.Status = append(filter.Status, task.NormalizeStatus(s))
	}
	for _, p := range listFlags.priorities {
		filter.Priority = append(filter.Priority, task.Priority(strings.ToLower(p)))
	}
	if listFlags.title != "" {
		g, err := glob.Compile(listFlags.title)
		if err != nil {
			return fmt.Errorf("invalid title pattern %q: %w", listFlags.title, err)
		}
		filter.Title = g
	}

	tasks := eng.List(filter)
	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return nil
	}

	for _, t := range tasks {
		line := fmt.Sprintf("%s %3d  %s", statusIcon(t.Status), t.ID, util.Truncate(t.Title, 72))
		line += "  " + mutedStyle.Render("["+priorityLabel(t.Priority)+"]")
		if len(t.Dependencies) > 0 {
			line += "  " + mutedStyle.Render("deps: "+joinRefs(t.Dependencies))
		}
		if n := len(t.Subtasks); n > 0 && !listFlags.withSubtasks {
			line += "  " + mutedStyle.Render(fmt.Sprintf("(%d/%d subtasks)", t.SubtasksDone(), n))
		}
		fmt.Println(line)

		if listFlags.withSubtasks {
			for _, sub := range t.Subtasks {
				subLine := fmt.Sprintf("  %s %s  %s", statusIcon(sub.Status), task.SubRef(t.ID, sub.Index), sub.Title)
				if len(sub.Dependencies) > 0 {
					subLine += "  " + mutedStyle.Render("deps: "+joinRefs(sub.Dependencies))
				}
				fmt.Println(subLine)
			}
		}
	}
	return nil
}
