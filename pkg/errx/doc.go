// Package errx provides structured, code-based errors for message construction defects.
//
// An assertion failure is reported with a composed message; a defect is a bug in the
// code that builds that message (a template whose directives do not match its
// arguments, a renderer registered twice, an unknown catalog condition). Defects are
// returned as *errx.Error values so they can never be mistaken for the failure the
// assertion was describing.
//
// Each error has:
//   - A stable 5-digit error code (e.g., "80000" for template defects)
//   - A category (e.g., "Template defect")
//   - A message
//   - Optional structured context (key-value pairs)
//   - Optional cause and base sentinel errors
//
// Error codes follow a scheme where the first two digits represent the domain:
//   - 80xxx: Template defects (argument count, directives)
//   - 81xxx: Representer defects (caps, registrations)
//   - 82xxx: Catalog defects (unknown or duplicate conditions)
//   - 83xxx: Aggregation defects
//   - 84xxx: CLI/input errors
//   - 85xxx: Configuration errors
//
// Example usage:
//
//	err := errx.Template("template expects 2 arguments, got 1").
//		WithContext("template", tmpl).
//		WithContext("args", 1)
//
//	if errx.IsDefect(err) {
//		panic(err)
//	}
//
//	fmt.Println(errx.UserString(err))  // User-friendly message
//	fmt.Println(errx.DebugString(err)) // Full debug details
package errx
