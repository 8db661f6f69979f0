package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dvloznov/finance-utils/internal/config"
	"github.com/dvloznov/finance-utils/internal/events"
	"github.com/dvloznov/finance-utils/internal/filestore"
	"github.com/dvloznov/finance-utils/internal/logger"
	"github.com/dvloznov/finance-utils/internal/pricing"
	"github.com/dvloznov/finance-utils/internal/safe"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Set by build flags.
var version = "dev"

func main() {
	root, closeApp := newRootCmd(os.Stdout, os.Stderr)
	err := root.Execute()
	if cerr := closeApp(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// gcsReadCloser is a GCS-backed reader that holds a client until closed.
type gcsReadCloser interface {
	filestore.Reader
	Close() error
}

// openGCS creates the reader used for gs:// names.
var openGCS = func(ctx context.Context) (gcsReadCloser, error) {
	return filestore.NewGCSReader(ctx)
}

// app bundles the collaborators shared by every subcommand.
type app struct {
	log    zerolog.Logger
	calc   *pricing.Calculator
	files  filestore.Reader
	stdout io.Writer
	close  func() error
}

func newApp(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) (*app, error) {
	log, err := logger.NewFromConfig(stderr, cfg.LoggerOptions())
	if err != nil {
		return nil, err
	}
	log = logger.WithFields(log, map[string]interface{}{"run_id": uuid.NewString()})

	a := &app{
		log:    log,
		calc:   pricing.NewCalculator(events.NewLogObserver(log, zerolog.InfoLevel)),
		stdout: stdout,
		close:  func() error { return nil },
	}

	var gcs filestore.Reader
	if cfg.EnableGCS {
		r, err := openGCS(ctx)
		if err != nil {
			return nil, err
		}
		gcs = r
		a.close = r.Close
	}
	a.files = filestore.NewRouter(filestore.NewLocalReader(), gcs)

	return a, nil
}

// newRootCmd builds the command tree. The returned function releases what
// the executed command opened and must be called after Execute, whether or
// not it failed.
func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, func() error) {
	var (
		a         *app
		logLevel  string
		logFormat string
		enableGCS bool
	)

	root := &cobra.Command{
		Use:   "finutil",
		Short: "Small pricing and file utilities",
		Long: `finutil totals item prices, applies discounts, divides numbers
and reads text files, reporting "no result" outcomes explicitly.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if flags.Changed("gcs") {
				cfg.EnableGCS = enableGCS
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a, err = newApp(cmd.Context(), cfg, stdout, stderr)
			if err != nil {
				return err
			}
			ctx := logger.WithContext(cmd.Context(), a.log)
			cmd.SetContext(ctx)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "info", "log level (overrides "+config.EnvLogLevel+")")
	pf.StringVar(&logFormat, "log-format", "console", "log format: console or json (overrides "+config.EnvLogFormat+")")
	pf.BoolVar(&enableGCS, "gcs", false, "allow gs:// file names (overrides "+config.EnvEnableGCS+")")

	appFn := func() *app { return a }
	root.AddCommand(newTotalCmd(appFn))
	root.AddCommand(newDiscountCmd(appFn))
	root.AddCommand(newDivideCmd(appFn))
	root.AddCommand(newReadCmd(appFn))

	closeApp := func() error {
		if a == nil {
			return nil
		}
		return a.close()
	}

	return root, closeApp
}

// totalParams holds the parsed flags for the total command.
type totalParams struct {
	itemsFile string
	discount  string
}

// runTotal is the extracted, testable body of the total command.
func runTotal(ctx context.Context, a *app, p totalParams) error {
	if p.itemsFile == "" {
		return errors.New("--items is required")
	}

	text, err := a.files.ReadText(ctx, p.itemsFile)
	if err != nil {
		return err
	}

	items, err := pricing.DecodeItems(strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("parse items from %s: %w", filestore.ExtractFilename(p.itemsFile), err)
	}

	total, err := a.calc.CalculateTotal(ctx, items)
	if err != nil {
		return err
	}

	if p.discount != "" {
		rate, err := decimal.NewFromString(p.discount)
		if err != nil {
			return fmt.Errorf("invalid discount %q: %w", p.discount, err)
		}
		total = a.calc.ApplyDiscount(ctx, total, rate)
	}

	_, err = fmt.Fprintln(a.stdout, total.String())
	return err
}

func newTotalCmd(appFn func() *app) *cobra.Command {
	var p totalParams

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Sum the prices of a JSON array of items",
		Long: `Read a JSON array of objects, each with a numeric "price" field,
and print the sum of the prices. The file may be local or, with --gcs,
a gs://bucket/object URI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTotal(cmd.Context(), appFn(), p)
		},
	}

	cmd.Flags().StringVar(&p.itemsFile, "items", "", "path or gs:// URI of the items JSON (required)")
	cmd.Flags().StringVar(&p.discount, "discount", "", "optional discount rate applied to the total, e.g. 0.2")

	return cmd
}

// discountParams holds the parsed flags for the discount command.
type discountParams struct {
	total string
	rate  string
}

// runDiscount is the extracted, testable body of the discount command.
func runDiscount(ctx context.Context, a *app, p discountParams) error {
	total, err := decimal.NewFromString(p.total)
	if err != nil {
		return fmt.Errorf("invalid total %q: %w", p.total, err)
	}
	rate, err := decimal.NewFromString(p.rate)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", p.rate, err)
	}

	result := a.calc.ApplyDiscount(ctx, total, rate)
	_, err = fmt.Fprintln(a.stdout, result.String())
	return err
}

func newDiscountCmd(appFn func() *app) *cobra.Command {
	var p discountParams

	cmd := &cobra.Command{
		Use:   "discount",
		Short: "Apply a fractional discount to a total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscount(cmd.Context(), appFn(), p)
		},
	}

	cmd.Flags().StringVar(&p.total, "total", "", "total amount (required)")
	cmd.Flags().StringVar(&p.rate, "rate", "0", "discount rate as a fraction, e.g. 0.2 for 20%")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

// runDivide is the extracted, testable body of the divide command.
func runDivide(a *app, dividend, divisor string) error {
	x, err := safe.ParseOperand(dividend)
	if err != nil {
		return err
	}
	y, err := safe.ParseOperand(divisor)
	if err != nil {
		return err
	}

	q, err := safe.Divide(x, y)
	if errors.Is(err, safe.ErrDivisionByZero) {
		a.log.Warn().Float64("dividend", x).Msg("Division by zero, no result")
		_, err = fmt.Fprintln(a.stdout, "no result: division by zero")
		return err
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.stdout, strconv.FormatFloat(q, 'g', -1, 64))
	return err
}

func newDivideCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "divide <dividend> <divisor>",
		Short: "Divide two numbers, reporting division by zero as no result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDivide(appFn(), args[0], args[1])
		},
	}
}

// runRead is the extracted, testable body of the read command.
func runRead(ctx context.Context, a *app, name string) error {
	text, err := a.files.ReadText(ctx, name)
	if errors.Is(err, filestore.ErrNotFound) {
		a.log.Warn().Str("file", name).Msg("File not found, nothing to print")
		return nil
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(a.stdout, text)
	return err
}

func newReadCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read <file>",
		Short: "Print a text file; a missing file prints nothing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd.Context(), appFn(), args[0])
		},
	}
}
