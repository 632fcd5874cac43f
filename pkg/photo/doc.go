// Package photo owns the lifecycle of the form's single optional photo
// attachment: selection, validation, encoding into a data URI, preview,
// and removal. Committed state lives in the form-state container under
// personal.photoUrl; everything else here is ephemeral controller state.
package photo
