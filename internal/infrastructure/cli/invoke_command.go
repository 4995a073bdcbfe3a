package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/doeshing/leafllm-go/internal/app"
	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/infrastructure/selection"
	"github.com/doeshing/leafllm-go/internal/ports"
)

var commandDescriptions = map[domain.CommandKey]string{
	domain.CommandComplete: "Continue the selected text",
	domain.CommandImprove:  "Rewrite the selected text, keeping the original as a comment",
	domain.CommandAsk:      "Replace a description of what you want with LaTeX",
}

type invokeOptions struct {
	file      string
	start     int
	end       int
	lines     string
	clipboard bool
	timeout   time.Duration
}

// newInvokeCommand builds the subcommand running key against a selection.
// Without flags the selection is stdin and the edited text goes to stdout,
// which lets editors use it as a filter.
func newInvokeCommand(container *app.Container, key domain.CommandKey) *cobra.Command {
	opts := invokeOptions{start: -1, end: -1}

	cmd := &cobra.Command{
		Use:   strings.ToLower(string(key)),
		Short: commandDescriptions[key],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if opts.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, opts.timeout)
				defer cancel()
			}
			var err error
			switch {
			case opts.clipboard:
				err = invokeOnClipboard(ctx, cmd, container, key)
			case opts.file != "":
				err = invokeOnFile(ctx, cmd, container, key, opts)
			default:
				err = invokeOnStream(ctx, cmd, container, key)
			}
			if errors.Is(err, errAlreadyReported) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Edit this file in place instead of filtering stdin")
	cmd.Flags().IntVar(&opts.start, "start", -1, "Byte offset where the selection starts (with --file)")
	cmd.Flags().IntVar(&opts.end, "end", -1, "Byte offset where the selection ends (with --file)")
	cmd.Flags().StringVarP(&opts.lines, "lines", "l", "", "Select a 1-based line range such as 3:7 (with --file)")
	cmd.Flags().BoolVarP(&opts.clipboard, "clipboard", "c", false, "Use the clipboard content as the selection")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Abort the request after this duration (0 waits indefinitely)")
	cmd.MarkFlagsMutuallyExclusive("file", "clipboard")
	cmd.MarkFlagsMutuallyExclusive("lines", "start")
	cmd.MarkFlagsMutuallyExclusive("lines", "end")
	return cmd
}

func invokeOnStream(ctx context.Context, cmd *cobra.Command, container *app.Container, key domain.CommandKey) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	buf := selection.NewBuffer(string(data))
	buf.SelectAll()

	_, runErr := dispatch(ctx, container, key, buf)
	// The document is always echoed so a failed filter never loses text.
	if _, err := io.WriteString(cmd.OutOrStdout(), buf.String()); err != nil {
		return err
	}
	return runErr
}

func invokeOnFile(ctx context.Context, cmd *cobra.Command, container *app.Container, key domain.CommandKey, opts invokeOptions) error {
	doc, err := selection.OpenFile(opts.file)
	if err != nil {
		return err
	}
	if err := selectRange(doc.Buffer, opts); err != nil {
		return err
	}

	result, err := dispatch(ctx, container, key, doc)
	if err != nil {
		return err
	}
	saved, err := doc.Save()
	if err != nil {
		return fmt.Errorf("write %s: %w", doc.Path(), err)
	}
	if saved {
		pterm.Success.WithWriter(cmd.ErrOrStderr()).Printf("%s updated %s (%d bytes inserted)\n", key, doc.Path(), len(result.Inserted))
	}
	return nil
}

func invokeOnClipboard(ctx context.Context, cmd *cobra.Command, container *app.Container, key domain.CommandKey) error {
	board := selection.NewClipboard()
	if !board.Enabled() {
		return errors.New("no clipboard utility available")
	}
	if _, err := dispatch(ctx, container, key, board); err != nil {
		return err
	}
	pterm.Success.WithWriter(cmd.ErrOrStderr()).Printf("%s result copied to the clipboard\n", key)
	return nil
}

// dispatch runs the command and translates outcomes for the CLI. Failures
// the dispatcher already alerted on come back as errAlreadyReported.
func dispatch(ctx context.Context, container *app.Container, key domain.CommandKey, editor ports.SelectionEditor) (domain.InvocationResult, error) {
	result, err := container.Dispatcher.Run(domain.InvocationRequest{Context: ctx, Command: key}, editor)
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, domain.ErrNoSelection):
		container.Logger.Info("nothing selected", map[string]interface{}{"command": key})
		return result, nil
	case errors.Is(err, domain.ErrNotEnabled):
		return result, fmt.Errorf("%s: %w (see `leafllm settings`)", key, err)
	case result.Outcome == domain.OutcomeFailed:
		reported.Store(true)
		return result, errAlreadyReported
	default:
		return result, err
	}
}

var errAlreadyReported = errors.New("command failed")

func selectRange(buf *selection.Buffer, opts invokeOptions) error {
	if opts.lines != "" {
		from, to, err := parseLineRange(opts.lines)
		if err != nil {
			return err
		}
		return buf.SelectLines(from, to)
	}
	if opts.start < 0 && opts.end < 0 {
		buf.SelectAll()
		return nil
	}
	if opts.start < 0 || opts.end < 0 {
		return errors.New("--start and --end must be given together")
	}
	return buf.Select(opts.start, opts.end)
}

// parseLineRange accepts "N" or "N:M".
func parseLineRange(raw string) (int, int, error) {
	fromRaw, toRaw, found := strings.Cut(raw, ":")
	if !found {
		toRaw = fromRaw
	}
	from, err := strconv.Atoi(strings.TrimSpace(fromRaw))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line range %q", raw)
	}
	to, err := strconv.Atoi(strings.TrimSpace(toRaw))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line range %q", raw)
	}
	return from, to, nil
}
