package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	appName    = "webpopt"
	appVersion = "0.3.0"
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "webpopt - batch image to WebP conversion",
	Long: `webpopt converts folders of images to WebP with cwebp, then either
replaces the originals in place or repacks each folder into a zip/cbz
archive.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s version %s\n", appName, appVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
