package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/doeshing/leafllm-go/internal/app"
	"github.com/doeshing/leafllm-go/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, shortcuts and credential setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			// Display report even if there were errors
			if renderErr := displayDoctorReport(cmd.OutOrStdout(), report); renderErr != nil {
				return renderErr
			}
			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			return nil
		},
	}
}

func displayDoctorReport(out io.Writer, report domain.HealthReport) error {
	data := pterm.TableData{{"Status", "Check", "Details"}}
	for _, check := range report.Checks {
		data = append(data, []string{styleStatus(check.Status), check.Name, check.Details})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(data).Render()
}

func styleStatus(status domain.HealthStatus) string {
	label := strings.ToUpper(string(status))
	switch status {
	case domain.HealthOK:
		return pterm.FgGreen.Sprint(label)
	case domain.HealthWarn:
		return pterm.FgYellow.Sprint(label)
	default:
		return pterm.FgRed.Sprint(label)
	}
}
