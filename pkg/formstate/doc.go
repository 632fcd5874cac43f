// Package formstate implements the path-addressable container that holds the
// CV record while the form is being filled. Values and validation messages
// are keyed by dotted field paths ("personal.firstName",
// "experiences.0.companyName"); a registry derived from the embedded form
// schema supplies labels and per-field constraints.
package formstate
