package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/deepsort/internal/codec"
	"github.com/roach88/deepsort/internal/value"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	Input string // input format override
	Write bool   // rewrite the input file in place
}

// SortResult describes a sort in JSON output.
type SortResult struct {
	Source  string       `json:"source"`
	Input   codec.Format `json:"input"`
	Output  codec.Format `json:"output"`
	Written bool         `json:"written"`
	// Document is the sorted document as canonical JSON. It is omitted
	// when the result was written back to the source file.
	Document json.RawMessage `json:"document,omitempty"`
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort [file]",
		Short: "Print a document with keys sorted at every depth",
		Long: `Decode a document, sort every object's keys, and print it.

Reads stdin when no file is given. The output format defaults to the
input format; CUE input is printed as JSON. With --sort-arrays, arrays
holding only strings, only numbers or only booleans are sorted as well.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, args, cmd)
		},
	}

	addNormalizeFlags(cmd, &opts.Input)
	cmd.Flags().StringP("output", "o", "", "output format (json|yaml|msgpack), defaults to the input format")
	cmd.Flags().Int("indent", 2, "spaces per indentation level, 0 for compact JSON")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "write the result back to the input file")

	return cmd
}

func runSort(opts *SortOptions, args []string, cmd *cobra.Command) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	if opts.Write && len(args) == 0 {
		return fail(s.formatter, ExitCommandError, ErrCodeGeneric, "--write requires a file argument", nil, nil)
	}

	doc, err := s.load(args, opts.Input, cmd)
	if err != nil {
		return err
	}
	sorted, err := s.normalize(doc)
	if err != nil {
		return err
	}

	out := outputFormat(s.cfg.Output, doc.Format)
	var buf bytes.Buffer
	if err := codec.Encode(out, &buf, sorted, codec.EncodeOptions{Indent: s.cfg.Indent}); err != nil {
		return fail(s.formatter, ExitFailure, ErrCodeEncodeFailed, fmt.Sprintf("cannot encode as %s", out), err, nil)
	}

	result := SortResult{Source: doc.Source, Input: doc.Format, Output: out}

	if opts.Write {
		if err := writeDocument(doc.Source, buf.Bytes()); err != nil {
			return fail(s.formatter, ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("cannot write %s", doc.Source), err, nil)
		}
		s.logger.Info("wrote sorted document", "path", doc.Source, "format", string(out), "bytes", buf.Len())
		result.Written = true
		if s.formatter.Format == "json" {
			return s.formatter.Success(result)
		}
		return s.formatter.Success(fmt.Sprintf("Sorted %s", doc.Source))
	}

	if s.formatter.Format == "json" {
		canonical, err := value.MarshalCanonical(sorted)
		if err != nil {
			return fail(s.formatter, ExitFailure, ErrCodeEncodeFailed, "cannot encode as json", err, nil)
		}
		result.Document = canonical
		return s.formatter.Success(result)
	}

	if _, err := s.formatter.Writer.Write(buf.Bytes()); err != nil {
		return WrapExitError(ExitCommandError, ErrCodeWriteFailed+": writing output", err)
	}
	return nil
}

// outputFormat picks the encoder: the configured format when set, else
// the input format. CUE has no encoder and falls back to JSON.
func outputFormat(configured string, input codec.Format) codec.Format {
	out := input
	if configured != "" {
		if f, err := codec.ParseFormat(configured); err == nil {
			out = f
		}
	}
	if out == codec.FormatCUE {
		out = codec.FormatJSON
	}
	return out
}
