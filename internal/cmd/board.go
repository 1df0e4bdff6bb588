package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/config"
	"github.com/Iron-Ham/taskmill/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive task board",
	Long: `Open a read-only board grouping tasks by status. The board reloads
when the snapshot file changes on disk, so it can sit alongside other
taskmill commands or editors writing the same store.`,
	RunE: runBoard,
}

var boardNoWatch bool

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.Flags().BoolVar(&boardNoWatch, "no-watch", false, "disable live reload on file changes")
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	watch := cfg.Board.Watch && !boardNoWatch
	return tui.Run(cfg.ResolveStorePath(), watch)
}
