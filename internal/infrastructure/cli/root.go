package cli

import (
	"context"
	"sync/atomic"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/doeshing/leafllm-go/internal/app"
	"github.com/doeshing/leafllm-go/internal/application/registry"
	"github.com/doeshing/leafllm-go/internal/domain"
	"github.com/doeshing/leafllm-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// reported is set when a command failed after its error was already shown
// to the user, so the caller can exit non-zero without repeating it.
var reported atomic.Bool

// Reported reports whether a command failure was already surfaced.
func Reported() bool {
	return reported.Load()
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	cobra.OnFinalize(func() {
		if err := container.Close(); err != nil {
			container.Logger.Warn("closing settings database failed", map[string]interface{}{"error": err.Error()})
		}
	})

	root := &cobra.Command{
		Use:   "leafllm",
		Short: "LeafLLM - LLM commands for LaTeX selections",
		Long: "LeafLLM sends the selected text of a document to a chat-completion API and " +
			"writes the answer back: Complete continues it, Improve rewrites it and Ask " +
			"turns a description into LaTeX.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return prepare(cmd, container)
		},
		SilenceUsage: true,
	}

	for _, key := range domain.CommandKeys() {
		root.AddCommand(newInvokeCommand(container, key))
	}
	root.AddCommand(
		commands.NewInstallCommand(container),
		commands.NewSettingsCommand(container),
		commands.NewEnableCommand(container),
		commands.NewDisableCommand(container),
		commands.NewKeyCommand(container),
		commands.NewConfigCommand(container),
		commands.NewShortcutsCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, nil
}

// prepare makes sure the bindings file and the command records exist. It
// runs before every subcommand, like an extension install hook that is
// safe to repeat. Binding failures are only reported the first time the
// bindings file is created; `leafllm settings` shows them afterwards.
func prepare(cmd *cobra.Command, container *app.Container) error {
	ctx := cmd.Context()
	suggested := lo.Map(domain.CommandKeys(), func(key domain.CommandKey, _ int) lo.Entry[string, string] {
		return lo.Entry[string, string]{Key: string(key), Value: domain.DefaultShortcut(key)}
	})
	created, err := container.Shortcuts.EnsureDefaults(ctx, suggested)
	if err != nil {
		container.Logger.Warn("could not write default shortcuts", map[string]interface{}{"error": err.Error()})
	}

	failures, err := container.Registry.Install(ctx)
	if err != nil {
		return err
	}
	if created && len(failures) > 0 {
		pterm.Warning.WithWriter(cmd.ErrOrStderr()).Println(
			registry.FormatBindingFailures(failures, container.Shortcuts.Path()))
	}
	return nil
}
