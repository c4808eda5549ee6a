package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iho/txengine/internal/adapter/csv"
	"github.com/iho/txengine/internal/infrastructure/idgen"
	"github.com/iho/txengine/internal/infrastructure/logger"
	"github.com/iho/txengine/internal/usecase"
)

type options struct {
	logLevel    string
	logFormat   string
	showSummary bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "txengine <transactions.csv>",
		Short: "Replay a transactions CSV and print the final client accounts",
		Long: `txengine reads deposits, withdrawals, disputes, resolves and chargebacks
from a CSV file with a type,client,tx,amount header and writes every client
account as client,available,held,total,locked to stdout.

Malformed records and rejected transactions are skipped; raise --log-level
to warn to see them on stderr.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), args[0], stdout, stderr, opts)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.logLevel, "log-level", "error", "Log level (debug, info, warn, error, disabled)")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "console", "Log format (json, console)")
	cmd.Flags().BoolVar(&opts.showSummary, "summary", false, "Print a run summary to stderr")

	return cmd
}

func run(ctx context.Context, path string, stdout, stderr io.Writer, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open transactions: %w", err)
	}
	defer file.Close()

	log := logger.New(logger.Config{
		Level:  opts.logLevel,
		Format: opts.logFormat,
		Output: stderr,
	})

	engine := usecase.NewEngine(
		usecase.NewProcessor(log, nil),
		usecase.NewLogReporter(nil),
		idgen.NewULIDGenerator(),
		log,
		nil,
	)

	out := bufio.NewWriter(stdout)

	summary, runErr := engine.Run(ctx, csv.NewReader(bufio.NewReader(file)), csv.NewWriter(out))
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("flush output: %w", err)
	}

	if opts.showSummary && summary != nil {
		printSummary(stderr, summary)
	}

	return runErr
}

func printSummary(w io.Writer, s *usecase.RunSummary) {
	fmt.Fprintf(w, "run %s\n", s.RunID)
	fmt.Fprintf(w, "  transactions:       %d\n", s.Transactions)
	fmt.Fprintf(w, "  parse errors:       %d\n", s.ParseErrors)
	fmt.Fprintf(w, "  transaction errors: %d\n", s.TransactionErrors)
	fmt.Fprintf(w, "  accounts:           %d (%d locked)\n", s.Accounts, s.FrozenAccounts)
	fmt.Fprintf(w, "  duration:           %s\n", s.Duration)
}
