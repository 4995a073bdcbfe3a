package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/doeshing/leafllm-go/internal/app"
)

// NewKeyCommand creates the key command with all subcommands
func NewKeyCommand(container *app.Container) *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the API key",
	}

	keyCmd.AddCommand(
		newKeySetCommand(container),
		newKeyClearCommand(container),
		newKeyStatusCommand(container),
	)
	return keyCmd
}

// newKeySetCommand creates the 'key set' subcommand
func newKeySetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set [key]",
		Short: "Validate and store the API key (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				pterm.Info.WithWriter(cmd.ErrOrStderr()).Println("Paste the API key and press Enter:")
				read, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				key = read
			}
			if strings.TrimSpace(key) == "" {
				return errors.New(ErrKeyRequired)
			}
			if err := container.Credentials.Set(cmd.Context(), key); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Successfully saved API key")
			return nil
		},
	}
}

// newKeyClearCommand creates the 'key clear' subcommand
func newKeyClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Credentials.Clear(cmd.Context()); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Println("API key removed")
			return nil
		},
	}
}

// newKeyStatusCommand creates the 'key status' subcommand
func newKeyStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether an API key is available",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := container.Credentials.IsSet(cmd.Context())
			if err != nil {
				return err
			}
			if set {
				fmt.Fprintln(cmd.OutOrStdout(), "API key is set")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "API key is not set")
			}
			return nil
		},
	}
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
