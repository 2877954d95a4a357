// Package overlay implements the category overlay controller: a single
// state machine that opens a modal shell, serves content from a FIFO cache
// or a Fetcher, and closes on ESC, backdrop, close control or swipe.
//
// Every open cycle gets a generation number. A fetch applies its result only
// if its generation is still current when it resolves, so a newer Open or a
// dismissal always wins over a late response. Late successes are cached
// anyway.
package overlay
