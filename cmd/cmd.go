// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// credentialFlags are shared by every command that operates on the store
// non-interactively.
func credentialFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:     "username",
			Aliases:  []string{"u"},
			Usage:    "Account name",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Aliases:  []string{"p"},
			Usage:    "Account password",
			Required: true,
		},
	}
}

func csvFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "csv",
		Usage: "Output CSV instead of an aligned table",
	}
}

// setupCommand handles store initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize the store database, run migrations and seed default accounts",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "config",
				Usage:  "Write an example config.toml",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
		},
	}
}

// menuCommand launches the interactive role-gated menu.
func menuCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "menu",
		Aliases: []string{"interactive"},
		Usage:   "Interactive store menu (login required)",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.Menu,
	}
}

// catalogCommand handles compact disc and musical work management.
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Catalog management (admin)",
		Commands: []*cli.Command{
			{
				Name:  "disc",
				Usage: "Compact disc operations",
				Commands: []*cli.Command{
					{
						Name:  "add",
						Usage: "Add a compact disc to the catalog",
						Flags: append(credentialFlags(),
							&cli.StringFlag{Name: "date", Usage: "Production date (YYYY-MM-DD)", Required: true},
							&cli.StringFlag{Name: "company", Usage: "Producing company", Required: true},
							&cli.FloatFlag{Name: "price", Usage: "Price per copy", Required: true},
						),
						Action: r.DiscAdd,
					},
					{
						Name:  "update",
						Usage: "Update company and price of a disc",
						Flags: append(credentialFlags(),
							&cli.IntFlag{Name: "id", Usage: "Disc id", Required: true},
							&cli.StringFlag{Name: "company", Usage: "New producing company", Required: true},
							&cli.FloatFlag{Name: "price", Usage: "New price per copy", Required: true},
						),
						Action: r.DiscUpdate,
					},
					{
						Name:  "delete",
						Usage: "Delete a disc without ledger history",
						Flags: append(credentialFlags(),
							&cli.IntFlag{Name: "id", Usage: "Disc id", Required: true},
						),
						Action: r.DiscDelete,
					},
					{
						Name:   "list",
						Usage:  "List the catalog",
						Flags:  append(credentialFlags(), csvFlag()),
						Action: r.DiscList,
					},
				},
			},
			{
				Name:  "work",
				Usage: "Musical work operations",
				Commands: []*cli.Command{
					{
						Name:  "add",
						Usage: "Add a musical work to a disc",
						Flags: append(credentialFlags(),
							&cli.StringFlag{Name: "title", Usage: "Work title", Required: true},
							&cli.StringFlag{Name: "author", Usage: "Work author", Required: true},
							&cli.StringFlag{Name: "performer", Usage: "Work performer", Required: true},
							&cli.IntFlag{Name: "disc", Usage: "Owning disc id", Required: true},
						),
						Action: r.WorkAdd,
					},
				},
			},
		},
	}
}

// ledgerCommand handles receipt and sale registration.
func ledgerCommand(r *Runner) *cli.Command {
	quantityFlags := func() []cli.Flag {
		return append(credentialFlags(),
			&cli.IntFlag{Name: "disc", Usage: "Disc id", Required: true},
			&cli.IntFlag{Name: "qty", Usage: "Number of copies", Required: true},
			&cli.StringFlag{Name: "date", Usage: "Operation date (YYYY-MM-DD), defaults to today"},
		)
	}

	return &cli.Command{
		Name:  "ledger",
		Usage: "Receipt and sale registration (admin)",
		Commands: []*cli.Command{
			{
				Name:   "receive",
				Usage:  "Register a receipt of compact discs",
				Flags:  quantityFlags(),
				Action: r.LedgerReceive,
			},
			{
				Name:   "sell",
				Usage:  "Register a sale of compact discs",
				Flags:  quantityFlags(),
				Action: r.LedgerSell,
			},
			{
				Name:  "stock",
				Usage: "Show net stock of one disc",
				Flags: append(credentialFlags(),
					&cli.IntFlag{Name: "disc", Usage: "Disc id", Required: true},
				),
				Action: r.LedgerStock,
			},
		},
	}
}

// reportCommand handles the derived reports.
func reportCommand(r *Runner) *cli.Command {
	rangeFlags := func() []cli.Flag {
		return append(credentialFlags(), csvFlag(),
			&cli.StringFlag{Name: "start", Usage: "Start date (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: "end", Usage: "End date (YYYY-MM-DD)", Required: true},
		)
	}

	return &cli.Command{
		Name:  "report",
		Usage: "Inventory and sales reports",
		Commands: []*cli.Command{
			{
				Name:   "inventory",
				Usage:  "Current stock position of every disc (admin)",
				Flags:  append(credentialFlags(), csvFlag()),
				Action: r.ReportInventory,
			},
			{
				Name:  "sales",
				Usage: "Sales of one disc within a date range",
				Flags: append(rangeFlags(),
					&cli.IntFlag{Name: "disc", Usage: "Disc id", Required: true},
				),
				Action: r.ReportSales,
			},
			{
				Name:   "popular-disc",
				Usage:  "Best selling disc and its works",
				Flags:  append(credentialFlags(), csvFlag()),
				Action: r.ReportPopularDisc,
			},
			{
				Name:   "popular-performer",
				Usage:  "Best selling performer and their works",
				Flags:  append(credentialFlags(), csvFlag()),
				Action: r.ReportPopularPerformer,
			},
			{
				Name:   "authors",
				Usage:  "Sales aggregated by author (admin)",
				Flags:  append(credentialFlags(), csvFlag()),
				Action: r.ReportAuthors,
			},
			{
				Name:   "period",
				Usage:  "Recompute and show period statistics (admin)",
				Flags:  rangeFlags(),
				Action: r.ReportPeriod,
			},
		},
	}
}
