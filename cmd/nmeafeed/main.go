// Command nmeafeed decodes NMEA 0183 / AIS telemetry from files or TCP
// feeds into JSON Lines records.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nmeafeed/internal/config"
	"nmeafeed/internal/health"
	"nmeafeed/internal/nmea"
	"nmeafeed/internal/objectstore"
	"nmeafeed/internal/pipeline"
)

var (
	flagInputs      []string
	flagOutput      string
	flagPretty      bool
	flagSkipErrors  bool
	flagStats       bool
	flagHealthCheck bool
	flagConfig      string
	flagS3Bucket    string
	flagS3Region    string
	flagS3Endpoint  string
	flagWorkers     int
)

var rootCmd = &cobra.Command{
	Use:           "nmeafeed",
	Short:         "Decode NMEA 0183 / AIS telemetry into JSON Lines",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringArrayVarP(&flagInputs, "input", "i", nil, "input file, glob pattern, or tcp://host:port (repeatable)")
	f.StringVarP(&flagOutput, "output", "o", "-", "output file, or - for stdout")
	f.BoolVarP(&flagPretty, "pretty", "p", false, "multi-line JSON output")
	f.BoolVarP(&flagSkipErrors, "skip-errors", "s", false, "drop ParseError records from output")
	f.BoolVarP(&flagStats, "stats", "S", false, "print aggregate statistics after the run")
	f.BoolVar(&flagHealthCheck, "health-check", false, "run the self-test sequence and exit")
	f.StringVar(&flagConfig, "config", "", "yaml config file")
	f.StringVar(&flagS3Bucket, "s3-bucket", "", "upload the output file to this bucket after the run")
	f.StringVar(&flagS3Region, "s3-region", "", "S3 region")
	f.StringVar(&flagS3Endpoint, "s3-endpoint", "", "S3-compatible endpoint")
	f.IntVar(&flagWorkers, "workers", 0, "sources processed concurrently (default 1)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "nmeafeed: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if flagS3Bucket != "" {
		cfg.S3.Bucket = flagS3Bucket
	}
	if flagS3Region != "" {
		cfg.S3.Region = flagS3Region
	}
	if flagS3Endpoint != "" {
		cfg.S3.Endpoint = flagS3Endpoint
	}
	if cfg.S3.Enabled() {
		// Flag overrides bypass Load's validation; re-check.
		cfg, err = revalidateS3(cfg)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if flagWorkers > 0 {
		cfg.Pipeline.Workers = flagWorkers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var uploader *objectstore.Uploader
	if cfg.S3.Enabled() {
		uploader, err = objectstore.New(cfg.S3)
		if err != nil {
			return err
		}
	}

	if flagHealthCheck {
		return runHealthCheck(ctx, uploader)
	}

	sources, err := expandInputs(flagInputs)
	if err != nil {
		return err
	}
	logger.Info("starting run",
		zap.Int("sources", len(sources)),
		zap.Int("workers", cfg.Pipeline.Workers),
		zap.Bool("skip_errors", flagSkipErrors))

	out, closeOut, err := openOutput(flagOutput)
	if err != nil {
		return err
	}

	stats := newRunStats()
	emit := func(rec nmea.Record) error {
		// Stats see every record, including the ones skip-errors drops.
		stats.observe(rec)
		if flagSkipErrors {
			if _, isErr := rec.Message.(nmea.ParseError); isErr {
				return nil
			}
		}
		var b []byte
		var err error
		if flagPretty {
			b, err = rec.MarshalIndent()
		} else {
			b, err = json.Marshal(rec)
		}
		if err != nil {
			return err
		}
		if _, err := out.Write(b); err != nil {
			return err
		}
		return out.WriteByte('\n')
	}

	opts := pipeline.Options{
		MaxLineBytes: cfg.Pipeline.MaxLineBytes,
		Workers:      cfg.Pipeline.Workers,
	}
	runErr := pipeline.Run(ctx, sources, opts, emit)
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	if err := closeOut(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	if uploader != nil {
		if flagOutput == "-" || flagOutput == "" {
			logger.Warn("s3 upload requested but output is stdout; skipping upload")
		} else {
			key, err := uploader.UploadFile(ctx, flagOutput)
			if err != nil {
				return err
			}
			logger.Info("uploaded output", zap.String("bucket", cfg.S3.Bucket), zap.String("key", key))
		}
	}

	if flagStats {
		stats.print(os.Stderr)
	}
	logger.Info("run complete",
		zap.Int("lines", stats.Lines),
		zap.Int("records", stats.Records),
		zap.Int("parse_errors", stats.ParseErrors))
	return nil
}

func revalidateS3(cfg config.Config) (config.Config, error) {
	if cfg.S3.Endpoint == "" && cfg.S3.Region == "" {
		return cfg, fmt.Errorf("s3 region or endpoint is required when a bucket is set")
	}
	if cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" {
		return cfg, fmt.Errorf("s3 credentials are required when a bucket is set")
	}
	if cfg.S3.Endpoint == "" {
		cfg.S3.Endpoint = fmt.Sprintf("s3.%s.amazonaws.com", cfg.S3.Region)
	}
	if cfg.S3.UseSSL == nil {
		v := true
		cfg.S3.UseSSL = &v
	}
	return cfg, nil
}

func runHealthCheck(ctx context.Context, uploader *objectstore.Uploader) error {
	var storage health.StorageProbe
	if uploader != nil {
		storage = uploader.Probe
	}
	probes := health.Run(ctx, storage)
	for _, p := range probes {
		status := "ok"
		if p.Err != nil {
			status = p.Err.Error()
		}
		fmt.Printf("%-12s %s\n", p.Name, status)
	}
	if !health.Passed(probes) {
		return fmt.Errorf("health check failed")
	}
	return nil
}

// expandInputs resolves glob patterns; tcp:// sources and literal paths
// pass through untouched (a missing file surfaces later as a per-source
// ParseError). An empty resolved set is fatal.
func expandInputs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("at least one --input is required")
	}
	var sources []string
	for _, pat := range patterns {
		if strings.HasPrefix(pat, "tcp://") || !strings.ContainsAny(pat, "*?[") {
			sources = append(sources, pat)
			continue
		}
		matches, err := filepath.Glob(pat)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pat, err)
		}
		sources = append(sources, matches...)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no inputs matched")
	}
	return sources, nil
}

func openOutput(path string) (*bufio.Writer, func() error, error) {
	if path == "" || path == "-" {
		return bufio.NewWriter(os.Stdout), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return bufio.NewWriter(f), f.Close, nil
}
