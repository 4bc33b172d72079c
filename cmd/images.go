package main

import (
	"os"

	"github.com/spf13/cobra"

	"wxr_validator/internal/app"
	"wxr_validator/internal/config"
	"wxr_validator/internal/report"
)

func newImagesCmd(sink report.Sink) *cobra.Command {
	var (
		dir           string
		configPath    string
		logLevel      string
		failFast      bool
		scanMode      string
		engine        string
		timeoutSec    int
		delayMS       int
		probeOriginal bool
	)

	cmd := &cobra.Command{
		Use:   "images [dir]",
		Short: "Verify that the images in WXR files all return a 200 response",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			switch {
			case flags.Changed("dir"):
				cfg.Dir = dir
			case len(args) == 1:
				cfg.Dir = args[0]
			}
			if flags.Changed("fail-fast") {
				cfg.Logic.FailFast = failFast
			}
			if flags.Changed("scan-mode") {
				cfg.Scan.Mode = scanMode
			}
			if flags.Changed("probe-original") {
				cfg.Scan.ProbeOriginal = probeOriginal
			}
			if flags.Changed("engine") {
				cfg.Probe.Engine = engine
			}
			if flags.Changed("timeout-sec") {
				cfg.Logic.TimeoutSec = timeoutSec
			}
			if flags.Changed("delay-ms") {
				cfg.Logic.DelayMS = delayMS
			}

			log, warning, err := newLoggerForCLI(os.Stderr, logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				log.Warn().Msg(warning)
			}

			validator, err := app.NewValidatorApp(cfg,
				app.WithSink(sink),
				app.WithLogger(log),
			)
			if err != nil {
				return err
			}
			return validator.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory containing the WXR (*.xml) files")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "abort the run on the first file that cannot be parsed")
	cmd.Flags().StringVar(&scanMode, "scan-mode", config.ScanModePattern, "how additional references are found: pattern or markup")
	cmd.Flags().BoolVar(&probeOriginal, "probe-original", false, "check resized images as referenced instead of the original size")
	cmd.Flags().StringVar(&engine, "engine", config.EngineHTTP, "probe engine: http or colly")
	cmd.Flags().IntVar(&timeoutSec, "timeout-sec", 30, "per-request timeout in seconds")
	cmd.Flags().IntVar(&delayMS, "delay-ms", 0, "minimum delay between requests in milliseconds")

	return cmd
}
