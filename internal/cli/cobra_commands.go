package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.profileCommand(),
		r.entryCommand(),
		r.expenseCommand(),
		r.reportCommand(),
		r.exportCommand(),
		r.estimateCommand(),
		r.serveCommand(),
		r.configCommand(),
	)
}

// run executes handler under the application timeout. Commands that wait
// for an answer on stdin get twice as long.
func (r *RootCommand) run(scale int, handler func(app *App) Command) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return r.withTimeout(scale, func(ctx context.Context) error {
			return handler(r.app).Execute(ctx, args)
		})
	}
}

func (r *RootCommand) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the people who use the tracker",
	}

	var admin bool
	addCmd := &cobra.Command{
		Use:   "add <name> <email>",
		Short: "Create a profile",
		Args:  cobra.ExactArgs(2),
		RunE: r.run(1, func(app *App) Command {
			return NewProfileAddCommand(app, admin)
		}),
	}
	addCmd.Flags().BoolVar(&admin, "admin", false, "Let the profile see everyone's data")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: r.run(1, func(app *App) Command {
			return NewProfileListCommand(app)
		}),
	}

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

func (r *RootCommand) entryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Submit and review time entries",
	}

	var submit submitFlags
	submitCmd := &cobra.Command{
		Use:   "submit <batch.toml>",
		Short: "Submit a batch of time entries",
		Long: `Submit every entry in a TOML batch file. The whole batch is checked
before anything is saved. Entries over 8 hours are listed and must be
confirmed unless --yes is given; declining offers to submit the rest.
Entries without an employee are saved under --employee, or under the
current profile's name when that is not set. --hours-only skips every
expense in the file.

Batch file layout:

  [[entry]]
  date = "2024-03-04"
  employee = "Ann"
  location = "12 Elm St"
  start = "07:00"
  end = "15:30"
  lunch = 30

    [[entry.expense]]
    amount = "12.50"
    description = "Paint"
    retailer = "Hardware Co"
    receipt = "receipts/paint.jpg"

  [[entry]]
  date = "2024-03-05"
  employee = "Ann"
  location = "12 Elm St"
  full_day = true
  lunch = 30`,
		Args: cobra.ExactArgs(1),
		RunE: r.run(2, func(app *App) Command {
			return NewEntrySubmitCommand(app, submit)
		}),
	}
	submitCmd.Flags().BoolVarP(&submit.Yes, "yes", "y", false, "Submit entries over 8 hours without asking")
	submitCmd.Flags().StringVar(&submit.Employee, "employee", "", "Employee for entries that name none")
	submitCmd.Flags().BoolVar(&submit.HoursOnly, "hours-only", false, "Submit hours and leave out the expenses")

	var listFilter filterFlags
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries, newest first",
		Args:  cobra.NoArgs,
		RunE: r.run(1, func(app *App) Command {
			return NewEntryListCommand(app, listFilter)
		}),
	}
	listFilter.register(listCmd.Flags())

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry with its expenses",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(1, func(app *App) Command {
			return NewEntryShowCommand(app)
		}),
	}

	var deleteYes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry and its expenses",
		Long:  "Delete a time entry, its expenses and their receipts. This cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(2, func(app *App) Command {
			return NewEntryDeleteCommand(app, deleteYes)
		}),
	}
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")

	cmd.AddCommand(submitCmd, listCmd, showCmd, deleteCmd)
	return cmd
}

func (r *RootCommand) expenseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record job expenses",
	}

	var flags expenseFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		Long: `Add an expense. Without --entry the expense stands alone; with it the
expense is attached to that time entry. Receipts must be images.`,
		Args: cobra.NoArgs,
		RunE: r.run(1, func(app *App) Command {
			return NewExpenseAddCommand(app, flags)
		}),
	}
	addCmd.Flags().StringVar(&flags.Date, "date", "", "Purchase date, YYYY-MM-DD (default today)")
	addCmd.Flags().StringVar(&flags.Amount, "amount", "", "Amount paid")
	addCmd.Flags().StringVar(&flags.Description, "description", "", "What was bought")
	addCmd.Flags().StringVar(&flags.Retailer, "retailer", "", "Where it was bought")
	addCmd.Flags().Int64Var(&flags.Entry, "entry", 0, "Time entry id to attach the expense to")
	addCmd.Flags().StringVar(&flags.Receipt, "receipt", "", "Receipt image file")

	var listFilter filterFlags
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List standalone expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: r.run(1, func(app *App) Command {
			return NewExpenseListCommand(app, listFilter)
		}),
	}
	listCmd.Flags().StringVar(&listFilter.From, "from", "", "First day to include (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listFilter.To, "to", "", "Last day to include (YYYY-MM-DD)")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense and its receipt",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(1, func(app *App) Command {
			return NewExpenseDeleteCommand(app)
		}),
	}

	retailersCmd := &cobra.Command{
		Use:   "retailers",
		Short: "List known retailers",
		Args:  cobra.NoArgs,
		RunE: r.run(1, func(app *App) Command {
			return NewRetailerListCommand(app)
		}),
	}

	cmd.AddCommand(addCmd, listCmd, deleteCmd, retailersCmd)
	return cmd
}

func (r *RootCommand) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries, groupings, daily charts and invoices",
	}

	var filter filterFlags
	var pricing pricingFlags
	filter.register(cmd.PersistentFlags())

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Total hours and expenses by location and employee",
		Args:  cobra.NoArgs,
		RunE: r.run(1, func(app *App) Command {
			return NewReportSummaryCommand(app, filter)
		}),
	}

	groupsCmd := &cobra.Command{
		Use:   "groups",
		Short: "Entries grouped by employee then location",
		Args:  cobra.NoArgs,
		RunE: r.run(1, func(app *App) Command {
			return NewReportGroupsCommand(app, filter)
		}),
	}

	dailyCmd := &cobra.Command{
		Use:   "daily",
		Short: "Hours per employee for every day between --from and --to",
		Args:  cobra.NoArgs,
		RunE: r.run(1, func(app *App) Command {
			return NewReportDailyCommand(app, filter)
		}),
	}

	invoiceCmd := &cobra.Command{
		Use:   "invoice",
		Short: "Labor, expenses and totals with overhead",
		Args:  cobra.NoArgs,
		RunE: r.run(1, func(app *App) Command {
			return NewReportInvoiceCommand(app, filter, pricing)
		}),
	}
	pricing.register(invoiceCmd.Flags())

	cmd.AddCommand(summaryCmd, groupsCmd, dailyCmd, invoiceCmd)
	return cmd
}

func (r *RootCommand) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries, expenses or an invoice as CSV",
	}

	var filter filterFlags
	var pricing pricingFlags
	var out string
	filter.register(cmd.PersistentFlags())
	cmd.PersistentFlags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	for _, kind := range []string{ExportEntries, ExportExpenses, ExportInvoice} {
		kind := kind
		sub := &cobra.Command{
			Use:   kind,
			Short: "Export " + kind + " as CSV",
			Args:  cobra.NoArgs,
			RunE: r.run(1, func(app *App) Command {
				return NewExportCommand(app, kind, filter, pricing, out)
			}),
		}
		if kind == ExportInvoice {
			pricing.register(sub.Flags())
		}
		cmd.AddCommand(sub)
	}
	return cmd
}

func (r *RootCommand) estimateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Cost estimate worksheets",
	}

	createCmd := &cobra.Command{
		Use:   "create <worksheet.toml>",
		Short: "Create a worksheet from a TOML file",
		Long: `Create a worksheet from a TOML file:

  job = "Deck"
  overhead = "15"

  [[row]]
  item = "Boards"
  cost = "420.00"`,
		Args: cobra.ExactArgs(1),
		RunE: r.run(1, func(app *App) Command {
			return NewEstimateCreateCommand(app)
		}),
	}

	updateCmd := &cobra.Command{
		Use:   "update <id> <worksheet.toml>",
		Short: "Replace a worksheet's contents from a TOML file",
		Args:  cobra.ExactArgs(2),
		RunE: r.run(1, func(app *App) Command {
			return NewEstimateUpdateCommand(app)
		}),
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a worksheet with its totals",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(1, func(app *App) Command {
			return NewEstimateShowCommand(app)
		}),
	}

	reviseCmd := &cobra.Command{
		Use:   "revise <id>",
		Short: "Copy a worksheet as the next version of its job",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(1, func(app *App) Command {
			return NewEstimateReviseCommand(app)
		}),
	}

	listCmd := &cobra.Command{
		Use:   "list [job]",
		Short: "List worksheets, or every version of one job",
		Args:  cobra.MaximumNArgs(1),
		RunE: r.run(1, func(app *App) Command {
			return NewEstimateListCommand(app)
		}),
	}

	var out string
	exportCmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a worksheet as an .xlsx spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(1, func(app *App) Command {
			return NewEstimateExportCommand(app, out)
		}),
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "Output .xlsx file")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a worksheet version",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(1, func(app *App) Command {
			return NewEstimateDeleteCommand(app)
		}),
	}

	cmd.AddCommand(createCmd, updateCmd, showCmd, reviseCmd, listCmd, exportCmd, deleteCmd)
	return cmd
}

func (r *RootCommand) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve reports, exports and receipts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return NewServeCommand(r.app).Execute(ctx, args)
		},
	}
}

func (r *RootCommand) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Show or create the configuration file",
		Annotations: map[string]string{"services": "none"},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: r.run(1, func(app *App) Command {
			return NewConfigShowCommand(app)
		}),
	}

	var path string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: r.run(1, func(app *App) Command {
			return NewConfigInitCommand(app, path, force)
		}),
	}
	initCmd.Flags().StringVar(&path, "path", "", "Where to write (default ~/.jobsite/config.toml)")
	initCmd.Flags().BoolVar(&force, "force", false, "Replace an existing file")

	cmd.AddCommand(showCmd, initCmd)
	return cmd
}
