// Package draft defines the core types shared by the draft-pick scraper: raw
// table cells and rows, the six-field pick record, and the collaborator
// interfaces (fetcher, sink, blob store, publisher) the pipeline is built from.
package draft
