package main

import (
	"context"
	"errors"
	"io"

	"github.com/mshakhov/discstore/internal/formatter"
	"github.com/mshakhov/discstore/internal/models"
	"github.com/mshakhov/discstore/internal/shared"
	"github.com/mshakhov/discstore/internal/ui"
	"github.com/urfave/cli/v3"
)

// Menu runs the interactive console session: a login loop followed by the
// role-gated store menu.
func (r *Runner) Menu(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(cmd.String("config")); err != nil {
		return err
	}

	prompter := ui.NewPrompter(r.input, r.output, r.palette)

	ok, err := r.menuLogin(prompter)
	if err != nil || !ok {
		return err
	}

	r.writePlainln("%s", r.palette.OK("Login successful"))

	if r.session.IsAdmin() {
		return r.adminMenu(prompter)
	}
	return r.userMenu(prompter)
}

// menuLogin asks for credentials until login succeeds or the user gives up.
func (r *Runner) menuLogin(prompter *ui.Prompter) (bool, error) {
	for {
		r.writeHeader("Music salon - Login")

		username, err := prompter.ReadLine("Username")
		if err != nil {
			return false, menuEOF(err)
		}
		password, err := prompter.ReadLine("Password")
		if err != nil {
			return false, menuEOF(err)
		}

		session, err := r.authn.Login(username, password)
		if err == nil {
			r.session = session
			return true, nil
		}
		if !errors.Is(err, shared.ErrAuthFailed) {
			return false, err
		}

		r.writePlainln("%s", r.palette.Err("Invalid credentials, please try again"))
		retry, err := prompter.ReadInt("Try again? (1 - yes, 0 - no)", 0, 1)
		if err != nil {
			return false, menuEOF(err)
		}
		if retry != 1 {
			return false, nil
		}
	}
}

// adminMenu is the full store menu.
func (r *Runner) adminMenu(prompter *ui.Prompter) error {
	for {
		r.writeHeader("Music salon - Administrator menu")
		for _, line := range []string{
			" 1. Show compact disc inventory",
			" 2. Show sales of a compact disc",
			" 3. Show the most popular compact disc",
			" 4. Show the most popular performer",
			" 5. Show sales by author",
			" 6. Calculate period statistics",
			" 7. Add a compact disc",
			" 8. Add a musical work",
			" 9. Register a receipt of discs",
			"10. Register a sale of discs",
			"11. Update a compact disc",
			"12. Delete a compact disc",
			"13. Show net stock of a disc",
			" 0. Exit",
		} {
			r.writePlainln("%s", line)
		}

		choice, err := prompter.ReadInt("Choose an option", 0, 13)
		if err != nil {
			return menuEOF(err)
		}
		if choice == 0 {
			return nil
		}

		if err := r.adminAction(prompter, choice); err != nil {
			if isPromptEOF(err) {
				return nil
			}
			r.writePlainln("%s", r.palette.Err(err.Error()))
		}
	}
}

func (r *Runner) adminAction(prompter *ui.Prompter, choice int) error {
	switch choice {
	case 1:
		return r.renderInventory(false)
	case 2:
		id, start, end, err := readSalesArgs(prompter)
		if err != nil {
			return err
		}
		return r.renderSales(id, start, end, false)
	case 3:
		return r.renderPopularDisc(false)
	case 4:
		return r.renderPopularPerformer(false)
	case 5:
		return r.renderAuthors(false)
	case 6:
		start, err := prompter.ReadDate("Start date")
		if err != nil {
			return err
		}
		end, err := prompter.ReadDate("End date")
		if err != nil {
			return err
		}
		return r.renderPeriod(start, end, false)
	case 7:
		return r.menuAddDisc(prompter)
	case 8:
		return r.menuAddWork(prompter)
	case 9:
		return r.menuRecord(prompter, models.OperationReceipt)
	case 10:
		return r.menuRecord(prompter, models.OperationSale)
	case 11:
		return r.menuUpdateDisc(prompter)
	case 12:
		id, err := prompter.ReadID("Disc id to delete")
		if err != nil {
			return err
		}
		if err := r.discs.Delete(id); err != nil {
			return err
		}
		return r.writePlainln("%s", r.palette.OK("Disc deleted"))
	case 13:
		id, err := prompter.ReadID("Disc id")
		if err != nil {
			return err
		}
		return r.renderStock(id)
	}
	return nil
}

// userMenu is the reduced menu for regular accounts.
func (r *Runner) userMenu(prompter *ui.Prompter) error {
	for {
		r.writeHeader("Music salon - User menu")
		for _, line := range []string{
			"1. Show the most popular compact disc",
			"2. Show the most popular performer",
			"3. Show sales of a compact disc",
			"0. Exit",
		} {
			r.writePlainln("%s", line)
		}

		choice, err := prompter.ReadInt("Choose an option", 0, 3)
		if err != nil {
			return menuEOF(err)
		}

		var actionErr error
		switch choice {
		case 0:
			return nil
		case 1:
			actionErr = r.renderPopularDisc(false)
		case 2:
			actionErr = r.renderPopularPerformer(false)
		case 3:
			var id int64
			var start, end string
			id, start, end, actionErr = readSalesArgs(prompter)
			if actionErr == nil {
				actionErr = r.renderSales(id, start, end, false)
			}
		}

		if actionErr != nil {
			if isPromptEOF(actionErr) {
				return nil
			}
			r.writePlainln("%s", r.palette.Err(actionErr.Error()))
		}
	}
}

func (r *Runner) menuAddDisc(prompter *ui.Prompter) error {
	date, err := prompter.ReadDate("Production date")
	if err != nil {
		return err
	}
	company, err := prompter.ReadLine("Producing company")
	if err != nil {
		return err
	}
	price, err := prompter.ReadFloat("Price")
	if err != nil {
		return err
	}

	disc := &models.CompactDisc{ProductionDate: date, Company: company, Price: price}
	if err := r.discs.Create(disc); err != nil {
		return err
	}
	return r.writePlainln("%s", r.palette.OK("Added compact disc with id "+formatter.ID(disc.ID)))
}

func (r *Runner) menuAddWork(prompter *ui.Prompter) error {
	discID, err := prompter.ReadID("Disc id")
	if err != nil {
		return err
	}
	title, err := prompter.ReadLine("Work title")
	if err != nil {
		return err
	}
	author, err := prompter.ReadLine("Author")
	if err != nil {
		return err
	}
	performer, err := prompter.ReadLine("Performer")
	if err != nil {
		return err
	}

	work := &models.MusicalWork{Title: title, Author: author, Performer: performer, CompactID: discID}
	if err := r.works.Create(work); err != nil {
		return err
	}
	return r.writePlainln("%s", r.palette.OK("Added musical work with id "+formatter.ID(work.ID)))
}

func (r *Runner) menuRecord(prompter *ui.Prompter, opType models.OperationType) error {
	discID, err := prompter.ReadID("Disc id")
	if err != nil {
		return err
	}
	qty, err := prompter.ReadInt("Quantity", 1, 1<<30)
	if err != nil {
		return err
	}

	operation := &models.Operation{Type: opType, CompactID: discID, Quantity: qty}
	if err := r.ledger.Record(operation); err != nil {
		return err
	}
	return r.writePlainln("%s", r.palette.OK("Registered "+string(opType)+" with id "+formatter.ID(operation.ID)))
}

func (r *Runner) menuUpdateDisc(prompter *ui.Prompter) error {
	id, err := prompter.ReadID("Disc id")
	if err != nil {
		return err
	}
	company, err := prompter.ReadLine("New producing company")
	if err != nil {
		return err
	}
	price, err := prompter.ReadFloat("New price")
	if err != nil {
		return err
	}

	if err := r.discs.Update(id, company, price); err != nil {
		return err
	}
	return r.writePlainln("%s", r.palette.OK("Disc updated"))
}

func readSalesArgs(prompter *ui.Prompter) (int64, string, string, error) {
	id, err := prompter.ReadID("Disc id")
	if err != nil {
		return 0, "", "", err
	}
	start, err := prompter.ReadDate("Start date")
	if err != nil {
		return 0, "", "", err
	}
	end, err := prompter.ReadDate("End date")
	if err != nil {
		return 0, "", "", err
	}
	return id, start, end, nil
}

// menuEOF treats an exhausted input stream as a clean exit.
func menuEOF(err error) error {
	if isPromptEOF(err) {
		return nil
	}
	return err
}

func isPromptEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
