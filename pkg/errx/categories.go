package errx

// CreateByCode creates an Error using the provided code, category, and message.
func CreateByCode(code, category, message string, cause error) *Error {
	if cause != nil {
		return Wrap(code, category, message, cause)
	}
	return New(code, category, message)
}

// FromSentinel creates an Error from a sentinel error and optional message/cause.
// The sentinel's code and category come from lookup; unknown sentinels fall
// back to an input error.
func FromSentinel(sentinel error, lookup func(error) (code, category string), message string, cause error) *Error {
	code, cat := lookup(sentinel)
	if code == "" {
		code = CodeInput
		cat = CatInput
	}
	return CreateByCode(code, cat, message, cause).WithBase(sentinel)
}

// Template creates a template defect: a template whose directives do not
// match the arguments supplied with it.
func Template(message string) *Error {
	return New(CodeTemplate, CatTemplate, message)
}

// Representer creates a representer defect (invalid caps, conflicting registrations).
func Representer(message string) *Error {
	return New(CodeRepresenter, CatRepresenter, message)
}

// Catalog creates a catalog defect.
func Catalog(message string) *Error {
	return New(CodeCatalog, CatCatalog, message)
}

// Input creates a CLI/input error.
func Input(message string) *Error {
	return New(CodeInput, CatInput, message)
}

// WrapInput wraps a cause with a CLI/input error.
func WrapInput(message string, cause error) *Error {
	return Wrap(CodeInput, CatInput, message, cause)
}

// Config creates a configuration error.
func Config(message string) *Error {
	return New(CodeConfig, CatConfig, message)
}

// WrapConfig wraps a cause with a configuration error.
func WrapConfig(message string, cause error) *Error {
	return Wrap(CodeConfig, CatConfig, message, cause)
}
