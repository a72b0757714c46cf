package cli

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roach88/deepsort/internal/value"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Input string
}

// CheckResult is the outcome of a check.
type CheckResult struct {
	Source     string `json:"source"`
	Normalized bool   `json:"normalized"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Verify a document is already sorted",
		Long: `Check that a document's keys (and, with --sort-arrays, its primitive
arrays) are already in sorted order.

Exits 0 when the document is normalized and 1 when sorting would change it.
Formatting is ignored; only the order of entries matters.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	addNormalizeFlags(cmd, &opts.Input)

	return cmd
}

func runCheck(opts *CheckOptions, args []string, cmd *cobra.Command) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	doc, err := s.load(args, opts.Input, cmd)
	if err != nil {
		return err
	}
	sorted, err := s.normalize(doc)
	if err != nil {
		return err
	}

	before, err := value.MarshalCanonical(doc.Value)
	if err != nil {
		return fail(s.formatter, ExitFailure, ErrCodeEncodeFailed, "cannot compare document", err, nil)
	}
	after, err := value.MarshalCanonical(sorted)
	if err != nil {
		return fail(s.formatter, ExitFailure, ErrCodeEncodeFailed, "cannot compare document", err, nil)
	}

	result := CheckResult{Source: doc.Source, Normalized: bytes.Equal(before, after)}
	s.logger.Debug("checked document", "source", doc.DisplayName(), "normalized", result.Normalized)

	if s.formatter.Format == "json" {
		if result.Normalized {
			return s.formatter.Success(result)
		}
		return fail(s.formatter, ExitFailure, ErrCodeNotNormalized, "document is not normalized", nil, result)
	}

	w := s.formatter.Writer
	if result.Normalized {
		ok := newPainter(opts.Color, w, color.FgGreen)
		return s.formatter.Success(ok.Sprintf("✓ %s is normalized", doc.DisplayName()))
	}
	bad := newPainter(opts.Color, w, color.FgRed, color.Bold)
	fmt.Fprintln(w, bad.Sprintf("✗ %s is not normalized", doc.DisplayName()))
	return NewExitError(ExitFailure, ErrCodeNotNormalized+": document is not normalized")
}
