package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mshakhov/discstore/internal/formatter"
	"github.com/mshakhov/discstore/internal/shared"
	"github.com/urfave/cli/v3"
)

// noData prints a "no data" notice. A report over an empty ledger is a valid
// outcome, not a failure, and must read differently from an error.
func (r *Runner) noData(err error) error {
	return r.writePlainln("%s", r.palette.Help(err.Error()))
}

// ReportInventory prints the stock position of every disc.
func (r *Runner) ReportInventory(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, true); err != nil {
		return err
	}
	return r.renderInventory(cmd.Bool("csv"))
}

func (r *Runner) renderInventory(asCSV bool) error {
	rows, err := r.reports.InventorySnapshot()
	if err != nil {
		return err
	}

	table := formatter.NewTable("ID", "Company", "Production date", "Price", "Received", "Sold", "Remaining", "Stock value")
	for _, row := range rows {
		table.AddRow(formatter.ID(row.CompactID), row.Company, row.ProductionDate, formatter.Money(row.Price),
			formatter.Int(row.Received), formatter.Int(row.Sold), formatter.Int(row.Remaining), formatter.Money(row.StockValue))
	}

	r.writeHeader("Compact disc inventory")
	return r.writeTable(table, asCSV)
}

// ReportSales prints the sales of one disc within an inclusive date range.
func (r *Runner) ReportSales(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, false); err != nil {
		return err
	}
	return r.renderSales(int64(cmd.Int("disc")), cmd.String("start"), cmd.String("end"), cmd.Bool("csv"))
}

func (r *Runner) renderSales(discID int64, start, end string, asCSV bool) error {
	sales, err := r.reports.SalesInPeriod(discID, start, end)
	if errors.Is(err, shared.ErrNoData) {
		return r.noData(err)
	}
	if err != nil {
		return err
	}

	table := formatter.NewTable("ID", "Company", "Production date", "Price", "Quantity sold", "Total value")
	table.AddRow(formatter.ID(sales.CompactID), sales.Company, sales.ProductionDate,
		formatter.Money(sales.Price), formatter.Int(sales.QuantitySold), formatter.Money(sales.TotalValue))

	r.writeHeader(fmt.Sprintf("Sales of disc #%d between %s and %s", discID, start, end))
	return r.writeTable(table, asCSV)
}

// ReportPopularDisc prints the best selling disc and the works pressed on it.
func (r *Runner) ReportPopularDisc(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, false); err != nil {
		return err
	}
	return r.renderPopularDisc(cmd.Bool("csv"))
}

func (r *Runner) renderPopularDisc(asCSV bool) error {
	popularity, err := r.reports.MostPopularDisc()
	if errors.Is(err, shared.ErrNoData) {
		return r.noData(err)
	}
	if err != nil {
		return err
	}

	table := formatter.NewTable("ID", "Total sold")
	table.AddRow(formatter.ID(popularity.CompactID), formatter.Int(popularity.TotalSold))

	r.writeHeader("Most popular compact disc")
	if err := r.writeTable(table, asCSV); err != nil {
		return err
	}

	works := formatter.NewTable("Work", "Title", "Author", "Performer")
	for _, work := range popularity.Works {
		works.AddRow(formatter.ID(work.ID), work.Title, work.Author, work.Performer)
	}

	r.writeHeader("Works on the most popular disc")
	return r.writeTable(works, asCSV)
}

// ReportPopularPerformer prints the best selling performer with one detail
// row per work of that performer.
func (r *Runner) ReportPopularPerformer(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, false); err != nil {
		return err
	}
	return r.renderPopularPerformer(cmd.Bool("csv"))
}

func (r *Runner) renderPopularPerformer(asCSV bool) error {
	rows, err := r.reports.MostPopularPerformer()
	if errors.Is(err, shared.ErrNoData) {
		return r.noData(err)
	}
	if err != nil {
		return err
	}

	table := formatter.NewTable("Performer", "Total sold", "Title", "Author", "Company")
	for _, row := range rows {
		table.AddRow(row.Performer, formatter.Int(row.TotalSold), row.Title, row.Author, row.Company)
	}

	r.writeHeader("Most popular performer")
	return r.writeTable(table, asCSV)
}

// ReportAuthors prints the per-author sales aggregates.
func (r *Runner) ReportAuthors(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, true); err != nil {
		return err
	}
	return r.renderAuthors(cmd.Bool("csv"))
}

func (r *Runner) renderAuthors(asCSV bool) error {
	rows, err := r.reports.SalesByAuthor()
	if errors.Is(err, shared.ErrNoData) {
		return r.noData(err)
	}
	if err != nil {
		return err
	}

	table := formatter.NewTable("Author", "Total sold", "Works", "Revenue")
	for _, row := range rows {
		table.AddRow(row.Author, formatter.Int(row.TotalSold), formatter.Int(row.WorksCount), formatter.Money(row.TotalRevenue))
	}

	r.writeHeader("Sales by author")
	return r.writeTable(table, asCSV)
}

// ReportPeriod rebuilds the period report cache for the given range and
// prints the fresh rows.
func (r *Runner) ReportPeriod(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, true); err != nil {
		return err
	}
	return r.renderPeriod(cmd.String("start"), cmd.String("end"), cmd.Bool("csv"))
}

func (r *Runner) renderPeriod(start, end string, asCSV bool) error {
	rows, err := r.reports.PeriodStatistics(start, end)
	if err != nil {
		return err
	}

	table := formatter.NewTable("ID", "Company", "Received", "Sold", "Remaining")
	for _, row := range rows {
		table.AddRow(formatter.ID(row.CompactID), row.Company,
			formatter.Int(row.Received), formatter.Int(row.Sold), formatter.Int(row.Remaining))
	}

	r.writeHeader(fmt.Sprintf("Operations between %s and %s", start, end))
	return r.writeTable(table, asCSV)
}

// renderStock prints the net stock of one disc; shared by the menu.
func (r *Runner) renderStock(discID int64) error {
	if _, err := r.discs.Get(discID); err != nil {
		return err
	}
	net, err := r.ledger.NetStock(discID)
	if err != nil {
		return err
	}
	return r.writePlainln("Disc %s: %d copies in stock", formatter.ID(discID), net)
}
