package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/deepsort/internal/value"
)

// DigestOptions holds flags for the digest command.
type DigestOptions struct {
	*RootOptions
	Input string
}

// DigestResult reports the content digest of a sorted document.
type DigestResult struct {
	Source string `json:"source"`
	Domain string `json:"domain"`
	Digest string `json:"digest"`
}

// NewDigestCommand creates the digest command.
func NewDigestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DigestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "digest [file]",
		Short: "Print the SHA-256 digest of a sorted document",
		Long: `Sort a document and print the SHA-256 digest of its canonical JSON.

Documents that differ only in key order, or in formatting, share a digest.
The hash input is the domain "` + value.DomainDocument + `", a zero byte,
then the canonical JSON.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(opts, args, cmd)
		},
	}

	addNormalizeFlags(cmd, &opts.Input)

	return cmd
}

func runDigest(opts *DigestOptions, args []string, cmd *cobra.Command) error {
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

	digest, err := value.Digest(sorted)
	if err != nil {
		return fail(s.formatter, ExitFailure, ErrCodeEncodeFailed, "cannot digest document", err, nil)
	}

	result := DigestResult{Source: doc.Source, Domain: value.DomainDocument, Digest: digest}
	if s.formatter.Format == "json" {
		return s.formatter.Success(result)
	}
	return s.formatter.Success(fmt.Sprintf("%s  %s", digest, doc.DisplayName()))
}
