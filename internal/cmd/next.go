package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next actionable task",
	Long: `Pick the best actionable task or subtask: startable, with every
dependency done, ranked by priority, then by fewest dependencies, then
by lowest ref. Running next repeatedly without changing any task
returns the same pick.`,
	RunE: runNext,
}

var nextAll bool

func init() {
	rootCmd.AddCommand(nextCmd)

	nextCmd.Flags().BoolVar(&nextAll, "all", false, "show every actionable candidate in rank order")
}

func runNext(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	if nextAll {
		candidates := eng.Candidates()
		if len(candidates) == 0 {
			fmt.Println("Nothing actionable")
			return nil
		}
		for i, c := range candidates {
			line := fmt.Sprintf("%2d. %s  %s  [%s]", i+1, c.Ref, c.Title, priorityLabel(c.Priority))
			if c.Note != "" {
				line += "  " + mutedStyle.Render(c.Note)
			}
			fmt.Println(line)
		}
		return nil
	}

	c, ok := eng.Next()
	if !ok {
		fmt.Println("Nothing actionable")
		return nil
	}
	fmt.Printf("%s  %s  [%s]\n", titleStyle.Render(c.Ref.String()), c.Title, priorityLabel(c.Priority))
	if c.Note != "" {
		fmt.Println(mutedStyle.Render(c.Note))
	}
	return nil
}
