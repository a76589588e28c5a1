// Package message composes failure messages from templates and aggregates
// many of them into one numbered report.
//
// A Template holds positional directives consumed strictly left to right:
//   - %n emits a newline
//   - %s consumes the next argument, renders it with a represent.Representer
//     and splices the rendered text in verbatim (it is never re-scanned)
//   - %% emits a literal percent sign
//
// The number of %s directives must equal the number of arguments. A mismatch,
// or any other directive, is a defect in the caller: Format returns an
// *errx.Error with code errx.CodeTemplate instead of a message, so a broken
// template is never mistaken for the failure it was meant to describe.
//
// A Description, when present and non-empty, prefixes the message as
// "[description] ". A diagnostic tail passed to ComposeWithDiff is appended
// byte for byte after formatting.
//
// Aggregate combines composed messages:
//
//	2 assertions failed:
//	1) [age] expected 7 but was 6
//	2) [name] expected "x" but was "y"
package message
