package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/graph"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Repair the dependency graph",
	Long: `Remove self-referential and dangling dependency edges. Cycles are
never broken automatically: they are reported so a human can decide
which edge is wrong.`,
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	repairs, err := eng.Fix()
	if err != nil {
		return err
	}

	if len(repairs) == 0 {
		fmt.Println("Nothing to repair")
	} else {
		fmt.Printf("Removed %d edge(s):\n", len(repairs))
		for _, r := range repairs {
			fmt.Printf("  %s (%s)\n", r.Edge, r.Reason)
		}
	}

	// Cycles survive a fix run; surface them so they are not mistaken
	// for repaired.
	var cycles int
	for _, v := range eng.Validate() {
		if v.Kind == graph.ViolationCycle {
			cycles++
			fmt.Printf("%s %s\n", errorStyle.Render("cycle:"), v.Message)
		}
	}
	if cycles > 0 {
		fmt.Println(mutedStyle.Render("cycles must be resolved manually with 'deps remove'"))
	}
	return nil
}
