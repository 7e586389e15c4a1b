// Package widget implements the dynamic form widget: an ordered field
// registry, the per-field value store, the editing/previewing/submitted view
// state machine and the Widget aggregate tying them to a validator and a
// details display. A Widget is single-threaded; hosts that share an instance
// between goroutines must serialise access themselves.
package widget
