// Package errors provides structured, actionable error messages for uploadkit.
//
// Every error carries a short code (e.g., "E101") that maps to a registered
// template with a category, a message and a longer explanation. Callers can
// attach a detail line, a suggestion and an underlying error:
//
//	err := errors.New("E120").
//	    WithDetail("Failed to parse uploadkit.toml: " + parseErr.Error()).
//	    WithSuggestion("Check that uploadkit.toml is valid TOML")
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// Output:
//	// ERROR E120: Invalid configuration file
//	//
//	//   Failed to parse uploadkit.toml: ...
//	//
//	//   Hint: Check that uploadkit.toml is valid TOML
//
// # Error Categories
//
//   - config: configuration file and environment errors
//   - cli: command-line usage errors
//   - upload: widget submit outcomes and transport failures
//   - picker: file selection errors
//
// Two errors with the same code match under errors.Is, so package-level
// sentinels built with New can be compared against freshly wrapped copies.
package errors
