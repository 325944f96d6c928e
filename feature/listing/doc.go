// Package listing downloads the theater's monthly schedule pages and turns them
// into candidate performances.
//
// # Windows
//
// A pass covers the current and the next calendar month. Each Window is
// fetched once with a bounded timeout; any non-200 status or transport failure
// is a *FetchError and the window simply contributes nothing.
//
// # Parsing
//
// Two page layouts are supported (see LayoutFor): the full schedule
// ("gesamtspielplan") and the repertoire pages. Parse reads the document once
// and yields candidates lazily. Records that cannot be read are dropped one by
// one and reported through the logger and the malformed record counter; the
// rest of the window is kept.
//
// # Archive
//
// When object storage is configured, every fetched document is stored under
// <prefix>/<yyyy>/<mm>/<timestamp>.html so markup changes can be inspected after
// an empty scrape.
package listing
