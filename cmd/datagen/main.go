// Command datagen writes a synthetic product catalog and can smoke-test a
// running dashboard.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/vitrine/internal/datagen"
	"github.com/okian/vitrine/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		rows        int
		seed        uint64
		out         string
		headers     string
		delimiter   string
		missingRate float64
		verbose     bool
	)

	root := &cobra.Command{
		Use:           "datagen",
		Short:         "Generate a synthetic product catalog CSV",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return err
			}
			if verbose {
				return logger.SetLevelString("debug")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rows <= 0 {
				return fmt.Errorf("--rows must be positive, got %d", rows)
			}
			if missingRate < 0 || missingRate > 1 {
				return fmt.Errorf("--missing-rate must be within 0..1, got %g", missingRate)
			}
			delim, err := parseDelimiter(delimiter)
			if err != nil {
				return err
			}

			cfg := datagen.DefaultConfig()
			cfg.Rows, cfg.Seed, cfg.MissingRate = rows, seed, missingRate
			products := datagen.Generate(cfg)

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := datagen.WriteCSV(w, products, headers, delim); err != nil {
				return err
			}
			logger.Get().Info(cmd.Context(), "catalog written",
				logger.Int("rows", len(products)), logger.String("out", out), logger.String("headers", headers))
			return nil
		},
	}

	f := root.Flags()
	f.IntVar(&rows, "rows", datagen.DefaultConfig().Rows, "number of products to generate")
	f.Uint64Var(&seed, "seed", datagen.DefaultConfig().Seed, "random seed; equal seeds give equal files")
	f.StringVarP(&out, "out", "o", "", "output file (default stdout)")
	f.StringVar(&headers, "headers", datagen.HeadersPT, "header set: en or pt")
	f.StringVar(&delimiter, "delimiter", ",", `field separator, a single character or "tab"`)
	f.Float64Var(&missingRate, "missing-rate", datagen.DefaultConfig().MissingRate, "probability of a blank numeric cell")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVerifyCmd())
	return root
}

func newVerifyCmd() *cobra.Command {
	var (
		url     string
		timeout time.Duration
		expect  int
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Probe a running dashboard's API and chart endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := datagen.Verify(cmd.Context(), datagen.VerifyConfig{
				BaseURL:    url,
				Timeout:    timeout,
				ExpectRows: expect,
			})
			if report != nil {
				for _, c := range report.Checks {
					mark := "ok"
					if !c.OK {
						mark = "FAIL"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%-4s %-16s %3d %s\n", mark, c.Name, c.Status, c.Detail)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:9080", "dashboard base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout")
	cmd.Flags().IntVar(&expect, "expect-rows", 0, "expected dataset rows (0 skips the check)")
	return cmd
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("--delimiter must be a single character or \"tab\", got %q", s)
	}
	return r[0], nil
}
