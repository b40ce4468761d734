package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/history"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/util"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past conversion runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest last",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := history.NewStore(history.DefaultPath())
		entries, err := store.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		bold := color.New(color.Bold)
		for _, e := range entries {
			mode := "archive (" + string(e.ArchiveFormat) + ")"
			if e.ReplaceOriginals {
				mode = "replace"
			}
			status := ""
			if e.Cancelled {
				status = " [cancelled]"
			}
			_, _ = bold.Printf("%s%s\n", e.Timestamp.Format("2006-01-02 15:04:05"), status)
			fmt.Printf("  folders: %s\n", strings.Join(e.Folders, ", "))
			fmt.Printf("  quality %d, %s, converted %d, skipped %d, errors %d\n",
				e.Quality, mode, e.Totals.Converted, e.Totals.SkippedExisting, e.Totals.Errors)
			fmt.Printf("  size %s -> %s (saved %s)\n",
				util.FormatBytesReadable(e.Totals.BytesOriginal),
				util.FormatBytesReadable(e.Totals.BytesConverted),
				util.FormatBytesReadable(e.Totals.BytesSaved))
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := history.NewStore(history.DefaultPath())
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
