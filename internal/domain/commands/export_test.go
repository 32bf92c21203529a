package commands

// FilterModules exports filterModules for testing.
var FilterModules = filterModules //nolint:gochecknoglobals // test export
