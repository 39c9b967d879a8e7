package main

import (
	"context"
	"fmt"

	"github.com/mshakhov/discstore/internal/models"
	"github.com/urfave/cli/v3"
)

// LedgerReceive appends a receipt entry to the ledger.
func (r *Runner) LedgerReceive(ctx context.Context, cmd *cli.Command) error {
	return r.recordOperation(cmd, models.OperationReceipt)
}

// LedgerSell appends a sale entry to the ledger. The sale is rejected when it
// would exceed the disc's net stock.
func (r *Runner) LedgerSell(ctx context.Context, cmd *cli.Command) error {
	return r.recordOperation(cmd, models.OperationSale)
}

func (r *Runner) recordOperation(cmd *cli.Command, opType models.OperationType) error {
	if err := r.start(cmd, true); err != nil {
		return err
	}

	operation := &models.Operation{
		Date:      cmd.String("date"),
		Type:      opType,
		CompactID: int64(cmd.Int("disc")),
		Quantity:  cmd.Int("qty"),
	}
	if err := r.ledger.Record(operation); err != nil {
		return err
	}

	msg := fmt.Sprintf("%d: registered %s of %d copies of disc %d on %s",
		operation.ID, operation.Type, operation.Quantity, operation.CompactID, operation.Date)
	return r.writePlainln("%s", r.palette.OK(msg))
}

// LedgerStock prints the net stock of one disc derived from the full ledger.
func (r *Runner) LedgerStock(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(cmd, true); err != nil {
		return err
	}

	return r.renderStock(int64(cmd.Int("disc")))
}
