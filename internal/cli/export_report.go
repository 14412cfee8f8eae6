package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/onboard/internal/config"
	"github.com/mrlokans/onboard/internal/database"
	"github.com/mrlokans/onboard/internal/database/users"
	"github.com/mrlokans/onboard/internal/reports"
)

type ExportReportCommand struct {
	Format       string
	DatabasePath string
	Output       string
	Limit        int
}

func NewExportReportCommand() *ExportReportCommand {
	return &ExportReportCommand{}
}

func (cmd *ExportReportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-report", flag.ExitOnError)

	fs.StringVar(&cmd.Format, "format", "markdown", "Report format (markdown, json, csv)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.Output, "out", "", "Output file (default: stdout)")
	fs.IntVar(&cmd.Limit, "limit", 0, "Max registrations to include (0 = all)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-report [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generate the registrations report in the chosen format.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export-report -format csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export-report -format markdown -out registrations.md -limit 50\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ExportReportCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database does not exist: %s", cmd.DatabasePath)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	registry := reports.NewRegistry()
	for key, handler := range map[string]reports.Handler{
		"markdown": reports.NewMarkdownHandler(),
		"json":     reports.NewJSONHandler(),
		"csv":      reports.NewCSVHandler(),
	} {
		if err := registry.Register(key, handler); err != nil {
			return fmt.Errorf("failed to register %s handler: %w", key, err)
		}
	}

	repo := users.NewRepository(db.DB)
	userList, err := repo.ListRecent(cmd.Limit)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	report := reports.NewRegistrationsReport(userList, time.Now())
	output, err := registry.Dispatch(cmd.Format, report)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if cmd.Output == "" {
		fmt.Print(output)
		return nil
	}

	if err := os.WriteFile(cmd.Output, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("Report written to %s (%d registrations)\n", cmd.Output, len(report.Rows))
	return nil
}
