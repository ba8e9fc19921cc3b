// Package errors provides the coded error type used across rpg-skillcheck.
//
// Every error carries a Code, a user-facing Message, an optional Cause and
// optional metadata. The codes map onto the three failure families of the
// check tracker:
//
//   - InvalidArgument: bad user input (empty selection, a custom die value
//     outside 1-20, a malformed import document). Blocks the action.
//   - NotFound: the operation targets a session, player or event id that is
//     not present.
//   - Unavailable: the durable store could not be read or written. Never
//     fatal; the in-memory state stays authoritative.
//
// # Basic Usage
//
//	err := errors.NotFound("session not found").WithMeta("session_id", id)
//	err := errors.InvalidArgumentf("custom value %d out of range", v)
//
// Wrapping keeps the original code:
//
//	if err := store.Set(ctx, key, data); err != nil {
//	    return errors.Wrap(err, "failed to save players")
//	}
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("value", input.Value, 1, 20, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
