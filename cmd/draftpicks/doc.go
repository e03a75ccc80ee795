// Package main hosts the draftpicks command.
//
// Architecture overview:
//   - Fetch: internal/fetcher/colly performs a single GET of the configured source page with the configured user
//     agent and headers. Any non-2xx response aborts the run with draft.ErrUnexpectedStatus. There is no retry.
//   - Archive (optional): the raw page is written to a blob store (local directory or GCS) under
//     <prefix>/<date>/<sha256>.html before parsing, so every refresh can be traced back to the bytes it read.
//   - Extract: internal/extract selects the target table with a CSS selector (goquery), drops the header row, strips
//     citation markers and normalizes cell whitespace. Row spans are recorded but not expanded.
//   - Reconstruct: internal/grid expands row spans into a rectangular six-column grid; short rows are padded.
//   - Persist: the store table is emptied and refilled inside one transaction (SQLite by default, Postgres via pgx).
//     A failed run leaves the previous contents in place.
//   - Notify (optional): a JSON refresh notice is published to Pub/Sub after the commit.
//   - Metrics (optional): Prometheus collectors are flushed to a node_exporter textfile when the run ends.
//
// Commands:
//
//	draftpicks [--config path]            fetch, parse and store the table
//	draftpicks scrape [--config path]     same as above
//	draftpicks show                       print the stored picks
//	draftpicks export --out picks.xlsx    write the stored picks to a workbook
//
// Quick checklist:
//   - Every config key can be overridden from the environment with the DRAFTPICKS_ prefix, e.g.
//     DRAFTPICKS_STORE_PATH=/data/picks.db or DRAFTPICKS_STORE_DRIVER=postgres with DRAFTPICKS_STORE_DSN.
//   - Run locally: go run ./cmd/draftpicks (writes bills_draft.db in the working directory).
//   - SIGINT/SIGTERM cancel the run; the store transaction is rolled back.
package main
