package main

import (
	"fmt"
	"os"

	"github.com/carnetapp/carnet-go/cmd"
	"github.com/carnetapp/carnet-go/internal/conf"
	"github.com/carnetapp/carnet-go/internal/datastore"
	"github.com/carnetapp/carnet-go/internal/importer"
	"github.com/carnetapp/carnet-go/internal/logging"
)

func main() {
	os.Exit(run())
}

// run keeps the exit code out of main so the logger close funcs always fire.
func run() int {
	logging.Init()
	defer func() {
		_ = datastore.CloseLogger()
		_ = importer.CloseLogger()
	}()

	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	if err := cmd.RootCommand(settings).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
