package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/leafllm-go/internal/app"
	"github.com/doeshing/leafllm-go/internal/domain"
)

const envKeyEditor = "EDITOR"

// NewConfigCommand creates the config command with all subcommands. The
// request configuration lives in the settings store; the application
// configuration is the YAML file shown by 'config app'.
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change the request configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showRequestConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigSaveCommand(container),
		newConfigEditCommand(container),
		newConfigResetCommand(container),
		newConfigDiffCommand(container),
		newConfigAppCommand(container),
	)
	return configCmd
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the request configuration as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showRequestConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newConfigSaveCommand creates the 'config save' subcommand
func newConfigSaveCommand(container *app.Container) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Replace the request configuration with a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readSource(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			if _, err := container.RequestConfig.SaveRaw(cmd.Context(), raw); err != nil {
				return fmt.Errorf("configuration rejected: %w", err)
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Request configuration saved")
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file to read, - for stdin")
	return cmd
}

// newConfigEditCommand creates the 'config edit' subcommand
func newConfigEditCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the request configuration in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRequestConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newConfigResetCommand creates the 'config reset' subcommand
func newConfigResetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default request configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.RequestConfig.Reset(cmd.Context()); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Request configuration reset to defaults")
			return nil
		},
	}
}

// newConfigDiffCommand creates the 'config diff' subcommand
func newConfigDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show diff versus the default request configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, err := container.RequestConfig.Diff(cmd.Context())
			if err != nil {
				return err
			}
			if diff == "" {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoDifferencesFromDefault)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), diff)
			return nil
		},
	}
}

// newConfigAppCommand creates the 'config app' subcommand
func newConfigAppCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "app",
		Short: "Show the application configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", container.ConfigLoader.Path())
			data, err := yaml.Marshal(container.Config)
			if err != nil {
				return fmt.Errorf("failed to marshal configuration: %w", err)
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}
}

func showRequestConfiguration(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.RequestConfig.Current(ctx)
	if err != nil {
		return err
	}
	data, err := domain.EncodeRequestConfiguration(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// editRequestConfiguration round-trips the configuration through a
// temporary file. An edit that fails validation leaves the store alone.
func editRequestConfiguration(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.RequestConfig.Current(ctx)
	if err != nil {
		return err
	}
	data, err := domain.EncodeRequestConfiguration(cfg)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "leafllm-config-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "request_configuration.json")
	if err := os.WriteFile(path, data, domain.SecureFilePermissions); err != nil {
		return err
	}

	editorCommand := getEditorCommand()
	cmd := exec.CommandContext(ctx, editorCommand, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editorCommand, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if string(edited) == string(data) {
		fmt.Fprintln(out, "No changes.")
		return nil
	}
	if _, err := container.RequestConfig.SaveRaw(ctx, edited); err != nil {
		return fmt.Errorf("configuration rejected, nothing saved: %w", err)
	}
	pterm.Success.WithWriter(out).Println("Request configuration saved")
	return nil
}

func readSource(stdin io.Reader, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(file)
}

func getEditorCommand() string {
	if editor := os.Getenv(envKeyEditor); editor != "" {
		return editor
	}
	return DefaultEditorCommand
}
