package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/deepsort/internal/config"
	"github.com/roach88/deepsort/internal/sorter"
	"github.com/roach88/deepsort/internal/value"
)

// session is the state shared by one command invocation.
type session struct {
	opts      *RootOptions
	formatter *OutputFormatter
	logger    *slog.Logger
	cfg       *config.Config
}

// newSession resolves output, logging and configuration. Errors are
// rendered before they are returned.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	s := &session{
		opts:      opts,
		formatter: newFormatter(opts, cmd),
		logger:    newLogger(opts, cmd.ErrOrStderr()),
	}

	cfg, err := config.Load(opts.ConfigFile, cmd.Flags())
	if err != nil {
		return nil, fail(s.formatter, ExitCommandError, ErrCodeInvalidConfig, "invalid configuration", err, nil)
	}
	s.cfg = cfg
	if cfg.File != "" {
		s.logger.Debug("loaded config", "file", cfg.File)
	}
	return s, nil
}

// load reads the document named by args, rendering failures.
func (s *session) load(args []string, inputFormat string, cmd *cobra.Command) (*Document, error) {
	path := StdinSource
	if len(args) > 0 {
		path = args[0]
	}

	doc, err := LoadDocument(path, inputFormat, cmd.InOrStdin())
	if err != nil {
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			return nil, fail(s.formatter, ExitFailure, ErrCodeGeneric, "load failed", err, nil)
		}
		exitCode := ExitFailure
		if loadErr.Code == ErrCodeNotFound || loadErr.Code == ErrCodeGeneric {
			exitCode = ExitCommandError
		}
		return nil, fail(s.formatter, exitCode, loadErr.Code, loadErr.Message, loadErr.Err, nil)
	}

	s.logger.Debug("decoded document", "source", doc.DisplayName(), "format", string(doc.Format))
	return doc, nil
}

// normalize sorts the document with the configured options.
func (s *session) normalize(doc *Document) (value.Value, error) {
	opts := s.cfg.SortOptions()
	sorted, err := sorter.Sort(doc.Value, opts)
	if err != nil {
		var cycle *sorter.CycleError
		if errors.As(err, &cycle) {
			details := map[string]string{"path": cycle.Path, "first": cycle.First}
			return nil, fail(s.formatter, ExitFailure, ErrCodeCycle, "sort failed", err, details)
		}
		return nil, fail(s.formatter, ExitFailure, ErrCodeGeneric, "sort failed", err, nil)
	}

	s.logger.Debug("sorted document",
		"source", doc.DisplayName(),
		"ascending", opts.Ascending(),
		"sort_arrays", opts.SortPrimitiveArrays,
	)
	return sorted, nil
}

// addNormalizeFlags registers the flags that change how documents sort.
// Their values are read back through config.Load.
func addNormalizeFlags(cmd *cobra.Command, input *string) {
	cmd.Flags().StringVarP(input, "input", "i", "", "input format (json|yaml|cue|msgpack), detected from the file extension by default")
	cmd.Flags().Bool("descending", false, "sort in descending order")
	cmd.Flags().Bool("sort-arrays", false, "also sort arrays of strings, numbers or booleans")
}
