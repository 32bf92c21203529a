package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/buildgraph/internal"
	"github.com/rios0rios0/buildgraph/internal/infrastructure/controllers"
)

// injectApp builds the container once and returns the application together
// with the controller bound to the root command.
func injectApp() (*internal.AppInternal, *controllers.ReportController) {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var appInternal *internal.AppInternal
	var reportController *controllers.ReportController
	if err := container.Invoke(func(ai *internal.AppInternal, rc *controllers.ReportController) {
		appInternal = ai
		reportController = rc
	}); err != nil {
		panic(err)
	}

	return appInternal, reportController
}
