package commands

import (
	"context"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/doeshing/leafllm-go/internal/app"
	"github.com/doeshing/leafllm-go/internal/application/registry"
	"github.com/doeshing/leafllm-go/internal/domain"
)

// NewInstallCommand creates the install command. Records are seeded before
// every command runs, so this only reports the result.
func NewInstallCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Create default settings and shortcut bindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			pterm.Success.WithWriter(out).Printf("Settings stored in %s\n", container.Config.Storage.Path)
			pterm.Info.WithWriter(out).Printf("Shortcut bindings in %s\n", container.Shortcuts.Path())
			return renderBindingFailures(cmd.Context(), out, container)
		},
	}
}

// NewSettingsCommand creates the settings command
func NewSettingsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "settings",
		Aliases: []string{"status"},
		Short:   "Show commands, shortcuts and credential status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// NewEnableCommand creates the enable command
func NewEnableCommand(container *app.Container) *cobra.Command {
	return newToggleCommand(container, true)
}

// NewDisableCommand creates the disable command
func NewDisableCommand(container *app.Container) *cobra.Command {
	return newToggleCommand(container, false)
}

func newToggleCommand(container *app.Container, enabled bool) *cobra.Command {
	verb := lo.Ternary(enabled, "enable", "disable")
	return &cobra.Command{
		Use:       verb + " <command>",
		Short:     strings.ToUpper(verb[:1]) + verb[1:] + " a command",
		Args:      cobra.ExactArgs(1),
		ValidArgs: commandNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := domain.ParseCommandKey(args[0])
			if err != nil {
				return err
			}
			updated, _, err := container.Registry.SetEnabled(cmd.Context(), key, enabled)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if updated.Status == domain.StatusError {
				pterm.Warning.WithWriter(out).Printf("%s is enabled but has no shortcut bound\n", key)
			} else {
				pterm.Success.WithWriter(out).Printf("%s is %s\n", key, updated.Status)
			}
			return nil
		},
	}
}

func showSettings(ctx context.Context, out io.Writer, container *app.Container) error {
	commands, err := container.Registry.Commands(ctx)
	if err != nil {
		return err
	}

	data := pterm.TableData{{"Command", "Shortcut", "Status", "State"}}
	for _, c := range commands {
		data = append(data, []string{
			string(c.Key),
			lo.Ternary(c.Shortcut == "", "-", c.Shortcut),
			string(c.Status),
			string(container.Dispatcher.State(c.Key)),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(data).Render(); err != nil {
		return err
	}

	set, err := container.Credentials.IsSet(ctx)
	if err != nil {
		return err
	}
	if set {
		pterm.Success.WithWriter(out).Printf("API key is set (%s backend)\n", container.Config.Credential.Backend)
	} else {
		pterm.Warning.WithWriter(out).Println("API key is not set; run `leafllm key set`")
	}

	return renderBindingFailures(ctx, out, container)
}

func renderBindingFailures(ctx context.Context, out io.Writer, container *app.Container) error {
	failures, err := container.Registry.Reconcile(ctx)
	if err != nil {
		return err
	}
	if len(failures) == 0 {
		pterm.Info.WithWriter(out).Println(MsgAllCommandsBound)
		return nil
	}
	pterm.Warning.WithWriter(out).Println(registry.FormatBindingFailures(failures, container.Shortcuts.Path()))
	return nil
}

func commandNames() []string {
	return lo.Map(domain.CommandKeys(), func(key domain.CommandKey, _ int) string {
		return strings.ToLower(string(key))
	})
}
