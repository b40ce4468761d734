package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/config"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/history"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/logging"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/reporter"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/run"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/summary"
)

type convertFlags struct {
	quality       int
	replace       bool
	archiveFormat string
	skipExisting  bool
	encoderPath   string
	logDir        string
	noLog         bool
	verbose       bool
}

var convertArgs convertFlags

var convertCmd = &cobra.Command{
	Use:   "convert <folder> [folder...]",
	Short: "Convert folders of images to WebP",
	Long: `Convert every supported image in the given folders to WebP.

By default each folder is repacked into an archive named after it, placed
in its parent directory. With --replace the originals are replaced in
place instead; --replace wins when both are requested.

Interrupting the run (Ctrl-C) stops it at the next image boundary; the
image or archive being written at that moment is never cut short.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args)
	},
}

func init() {
	convertCmd.Flags().IntVarP(&convertArgs.quality, "quality", "q", config.DefaultQuality,
		fmt.Sprintf("cwebp quality factor (%d-%d); PNG at 100 encodes losslessly", config.MinQuality, config.MaxQuality))
	convertCmd.Flags().BoolVar(&convertArgs.replace, "replace", false,
		"replace originals in place instead of archiving")
	convertCmd.Flags().StringVar(&convertArgs.archiveFormat, "archive-format", string(config.DefaultArchiveFormat),
		"archive container: zip or cbz")
	convertCmd.Flags().BoolVar(&convertArgs.skipExisting, "skip-existing", true,
		"skip images already in WebP format")
	convertCmd.Flags().StringVar(&convertArgs.encoderPath, "encoder", "",
		"path to the cwebp binary (default: cwebp on PATH)")
	convertCmd.Flags().StringVar(&convertArgs.logDir, "log-dir", "",
		"log directory (default: ~/.local/state/webpopt/logs)")
	convertCmd.Flags().BoolVar(&convertArgs.noLog, "no-log", false,
		"disable log file creation")
	convertCmd.Flags().BoolVarP(&convertArgs.verbose, "verbose", "v", false,
		"enable verbose output")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(folders []string) error {
	cfg := config.NewConfig(folders...)
	cfg.Quality = convertArgs.quality
	cfg.ArchiveFormat = config.ArchiveFormat(convertArgs.archiveFormat)
	cfg.ReplaceOriginals = convertArgs.replace
	cfg.SkipExistingWebP = convertArgs.skipExisting
	cfg.EncoderPath = convertArgs.encoderPath
	cfg.Verbose = convertArgs.verbose

	if err := cfg.Validate(); err != nil {
		return err
	}

	logDir := convertArgs.logDir
	if logDir == "" {
		logDir = logging.DefaultLogDir()
	}
	logger, err := logging.Setup(logDir, convertArgs.verbose, convertArgs.noLog, os.Args)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	rep := reporter.Multi(
		reporter.NewTerminalReporterVerbose(convertArgs.verbose),
		reporter.NewLogReporter(logger.Writer()),
	)

	logger.Debug("Configuration: quality=%d replace=%v skip_existing=%v archive_format=%s encoder=%q",
		cfg.Quality, cfg.ReplaceOriginals, cfg.SkipExistingWebP, cfg.ArchiveFormat, cfg.EncoderPath)

	// Ctrl-C requests cooperative cancellation; the run stops at its next
	// checkpoint rather than mid-encode.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The run executes on its own worker while a second goroutine drains
	// its notifications to the reporters, keeping display I/O off the
	// encode loop.
	pump := reporter.NewChannelReporter(256)
	var result *summary.RunSummary
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer pump.Close()
		var runErr error
		result, runErr = run.Process(ctx, cfg, pump)
		return runErr
	})
	g.Go(func() error {
		for apply := range pump.Events() {
			apply(rep)
		}
		return nil
	})
	runErr := g.Wait()

	// History is best effort: failures are logged and never fail the run.
	if runErr == nil {
		store := history.NewStore(history.DefaultPath())
		if err := store.Append(history.NewEntry(cfg, result)); err != nil {
			logger.Info("History not recorded: %v", err)
		}
	}

	return runErr
}
