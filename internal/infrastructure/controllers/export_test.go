package controllers

// WriteOutput exports writeOutput for testing.
var WriteOutput = writeOutput //nolint:gochecknoglobals // test export
