package commands

import (
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/doeshing/leafllm-go/internal/app"
	"github.com/doeshing/leafllm-go/internal/domain"
)

// NewShortcutsCommand creates the shortcuts command with all subcommands
func NewShortcutsCommand(container *app.Container) *cobra.Command {
	shortcutsCmd := &cobra.Command{
		Use:   "shortcuts",
		Short: "Inspect or change the key bindings editors use",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listShortcuts(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	shortcutsCmd.AddCommand(
		newShortcutsListCommand(container),
		newShortcutsBindCommand(container),
		newShortcutsUnbindCommand(container),
	)
	return shortcutsCmd
}

// newShortcutsListCommand creates the 'shortcuts list' subcommand
func newShortcutsListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the bound key combinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listShortcuts(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newShortcutsBindCommand creates the 'shortcuts bind' subcommand
func newShortcutsBindCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "bind <command> <keys>",
		Short:   "Bind a key combination such as Alt+C to a command",
		Example: "  leafllm shortcuts bind improve Ctrl+Shift+I",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := domain.ParseCommandKey(args[0])
			if err != nil {
				return err
			}
			if err := container.Shortcuts.Bind(cmd.Context(), string(key), args[1]); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printf("%s bound\n", key)
			return renderBindingFailures(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newShortcutsUnbindCommand creates the 'shortcuts unbind' subcommand
func newShortcutsUnbindCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "unbind <command>",
		Short: "Remove the key combination of a command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := domain.ParseCommandKey(args[0])
			if err != nil {
				return err
			}
			if err := container.Shortcuts.Unbind(cmd.Context(), string(key)); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printf("%s unbound\n", key)
			return renderBindingFailures(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func listShortcuts(ctx context.Context, out io.Writer, container *app.Container) error {
	bindings, err := container.Shortcuts.Shortcuts(ctx)
	if err != nil {
		return err
	}
	data := pterm.TableData{{"Command", "Keys"}}
	for _, key := range domain.CommandKeys() {
		combo, ok := bindings[string(key)]
		if !ok {
			combo = "-"
		}
		data = append(data, []string{string(key), combo})
	}
	pterm.Info.WithWriter(out).Printf("Bindings file: %s\n", container.Shortcuts.Path())
	return pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(data).Render()
}
