package errx

// RegistryEntry describes a registered error code.
type RegistryEntry struct {
	Code     string
	Category string
	Defect   bool
}

// Error codes follow a stable 5-digit scheme where the first two digits are the
// domain and the last three digits are reserved for subcodes.
const (
	CodeTemplate    = "80000"
	CodeRepresenter = "81000"
	CodeCatalog     = "82000"
	CodeInput       = "84000"
	CodeConfig      = "85000"
)

const (
	CatTemplate    = "Template defect"
	CatRepresenter = "Representer defect"
	CatCatalog     = "Catalog defect"
	CatInput       = "Input error"
	CatConfig      = "Configuration error"
)

var registryEntries = []RegistryEntry{
	{Code: CodeTemplate, Category: CatTemplate, Defect: true},
	{Code: CodeRepresenter, Category: CatRepresenter, Defect: true},
	{Code: CodeCatalog, Category: CatCatalog, Defect: true},
	{Code: CodeInput, Category: CatInput},
	{Code: CodeConfig, Category: CatConfig},
}

var registryMap = func() map[string]RegistryEntry {
	m := make(map[string]RegistryEntry, len(registryEntries))
	for _, entry := range registryEntries {
		m[entry.Code] = entry
	}
	return m
}()

// ErrorRegistry returns the error registry in deterministic order.
func ErrorRegistry() []RegistryEntry {
	entries := make([]RegistryEntry, len(registryEntries))
	copy(entries, registryEntries)
	return entries
}

// CategoryFor returns the registry category for a code.
func CategoryFor(code string) (string, bool) {
	entry, ok := registryMap[code]
	return entry.Category, ok
}

// IsValidCode checks if the given error code is registered.
func IsValidCode(code string) bool {
	_, ok := registryMap[code]
	return ok
}

// IsDefectCode reports whether code denotes a message construction defect.
func IsDefectCode(code string) bool {
	return registryMap[code].Defect
}
