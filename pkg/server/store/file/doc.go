// Package file provides JSON-file implementations of the store interfaces
// defined in the parent store package.
//
// Every store serializes its own read-modify-write cycles with a mutex and
// writes through a temporary file followed by a rename, so concurrent
// readers never observe a partially written document. Separate processes
// writing the same tree still race, last writer wins.
package file
