// Package represent renders arbitrary Go values into safe display strings for
// failure messages.
//
// Representation is total: Represent never panics and never returns an error.
// Values are only read, never modified. Unusual inputs degrade to placeholders:
//   - nil and typed nil values render as "null"
//   - a collection that contains itself renders the inner occurrence as
//     "(this collection)", a struct reachable from itself as "(this instance)"
//   - groups longer than the element cap are elided with "..."
//   - nesting deeper than the depth cap renders as "..."
//   - output longer than the length cap is cut with "... (truncated N chars)";
//     the walk itself stops once the cap is spent, ending with "... (truncated)"
//   - map entries are ordered by key, numerically for number keys
//   - a panicking String, Error or registered renderer is reported inline
//
// Strings follow a quoting policy (double quotes by default). Unquoted bypasses
// quoting for values that are already human-readable phrases.
//
// Type-specific renderers live in a Registry. Registries are meant to be
// populated during initialization and frozen before concurrent use:
//
//	reg := represent.NewRegistry()
//	_ = represent.RegisterFor(reg, func(u url.URL) string { return u.Redacted() })
//	reg.Freeze()
//	r, err := represent.New(represent.WithRegistry(reg), represent.WithQuoting(represent.QuoteNone))
package represent
