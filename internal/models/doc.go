// Package models defines the domain entities of the music salon store.
//
// Two categories of types live here:
//
// 1. Persistent entities backed by tables:
//   - [User] : store accounts with a role (admin or user)
//   - [CompactDisc] : catalog entries priced per copy
//   - [MusicalWork] : works pressed on a disc
//   - [Operation] : one append-only ledger entry (receipt or sale)
//
// 2. Report rows derived from the ledger and catalog:
//   - [InventoryRow] : current stock position of one disc
//   - [PeriodSales] : sales of one disc within a date range
//   - [DiscPopularity] / [PerformerSales] / [AuthorSales] : popularity aggregates
//   - [PeriodReportRow] : one row of the materialized period report cache
//
// Stock is never stored on a disc; it is always derived from the ledger as
// receipts minus sales.
package models
