package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmill/internal/engine"
	"github.com/Iron-Ham/taskmill/internal/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import tasks from a planning document",
	Long: `Import tasks from a JSON plan document or a markdown outline. The
format follows the file extension (.json is JSON, anything else is
sniffed from the content). The import is all-or-nothing: if any task
or dependency in the document is invalid, nothing is created.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	eng, cfg, err := openEngine()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var batch []engine.BatchTask
	switch strings.ToLower(filepath.Ext(args[0])) {
	case ".json":
		batch, err = ingest.ParseJSON(data, cfg.DefaultPriority())
	case ".md", ".markdown":
		batch, err = ingest.ParseMarkdown(data, cfg.DefaultPriority())
	default:
		batch, err = ingest.Parse(data, cfg.DefaultPriority())
	}
	if err != nil {
		return err
	}

	ids, err := eng.CreateBatch(batch)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d task(s):\n", len(ids))
	for i, id := range ids {
		fmt.Printf("  %3d  %s\n", id, batch[i].Task.Title)
	}
	return nil
}
