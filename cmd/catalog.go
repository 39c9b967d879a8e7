package main

import (
	"context"

	"github.com/mshakhov/discstore/internal/formatter"
	"github.com/mshakhov/discstore/internal/models"
	"github.com/mshakhov/discstore/internal/shared"
	"github.com/urfave/cli/v3"
)

// createConfig is separated for the setup action; shared.CreateConfigFile
// refuses to overwrite an existing file.
func createConfig(path string) error {
	return shared.CreateConfigFile(path)
}

// start opens the store and authenticates the credential flags, optionally
// requiring an administrator session.
func (r *Runner) start(cmd *cli.Command, admin bool) error {
	if err := r.openStore(cmd.String("config")); err != nil {
		return err
	}
	if err := r.login(cmd); err != nil {
		return err
	}
	if admin {
		return r.requireAdmin()
	}
	return nil
}

// DiscAdd inserts a new compact disc into the catalog.
func (r *Runner) DiscAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, true); err != nil {
		return err
	}

	disc := &models.CompactDisc{
		ProductionDate: cmd.String("date"),
		Company:        cmd.String("company"),
		Price:          cmd.Float("price"),
	}
	if err := r.discs.Create(disc); err != nil {
		return err
	}

	return r.writePlainln("%s", r.palette.OK(formatter.ID(disc.ID)+": disc added"))
}

// DiscUpdate replaces the company and price of one disc.
func (r *Runner) DiscUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, true); err != nil {
		return err
	}

	id := int64(cmd.Int("id"))
	if err := r.discs.Update(id, cmd.String("company"), cmd.Float("price")); err != nil {
		return err
	}

	return r.writePlainln("%s", r.palette.OK(formatter.ID(id)+": disc updated"))
}

// DiscDelete removes a disc and, through the schema cascade, its works. A
// disc referenced by ledger operations cannot be removed.
func (r *Runner) DiscDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, true); err != nil {
		return err
	}

	id := int64(cmd.Int("id"))
	if err := r.discs.Delete(id); err != nil {
		return err
	}

	return r.writePlainln("%s", r.palette.OK(formatter.ID(id)+": disc deleted"))
}

// DiscList prints the catalog.
func (r *Runner) DiscList(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, true); err != nil {
		return err
	}

	discs, err := r.discs.List()
	if err != nil {
		return err
	}

	table := formatter.NewTable("ID", "Company", "Production date", "Price")
	for _, disc := range discs {
		table.AddRow(formatter.ID(disc.ID), disc.Company, disc.ProductionDate, formatter.Money(disc.Price))
	}

	r.writeHeader("Catalog")
	return r.writeTable(table, cmd.Bool("csv"))
}

// WorkAdd inserts a musical work for an existing disc.
func (r *Runner) WorkAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, true); err != nil {
		return err
	}

	work := &models.MusicalWork{
		Title:     cmd.String("title"),
		Author:    cmd.String("author"),
		Performer: cmd.String("performer"),
		CompactID: int64(cmd.Int("disc")),
	}
	if err := r.works.Create(work); err != nil {
		return err
	}

	return r.writePlainln("%s", r.palette.OK(formatter.ID(work.ID)+": work added"))
}
