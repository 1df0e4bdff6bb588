package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/graph"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Audit the dependency graph",
	Long: `Check every dependency edge for self-references, dangling targets,
and cycles. Exits with code 1 when violations are found.`,
	RunE: runValidate,
}

var validateJSON bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "emit violations as JSON")
}

func runValidate(cmd *cobra.Command, args []string) error {
	eng, _, err := openEngine()
	if err != nil {
		return err
	}

	violations := eng.Validate()

	if validateJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if violations == nil {
			violations = []graph.Violation{}
		}
		if err := enc.Encode(violations); err != nil {
			return err
		}
	} else if len(violations) == 0 {
		fmt.Println(doneStyle.Render("✓") + " Dependency graph is clean")
	} else {
		fmt.Printf("%s %d violation(s):\n", errorStyle.Render("✗"), len(violations))
		for _, v := range violations {
			fmt.Printf("  [%s] %s\n", v.Kind, v.Message)
		}
	}

	if len(violations) > 0 {
		// Nonzero exit for scripts; the report above is the real output.
		cmd.SilenceErrors = true
		return fmt.Errorf("%d violation(s) found", len(violations))
	}
	return nil
}
