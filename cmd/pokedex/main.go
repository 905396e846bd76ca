package main

import (
	"fmt"
	"os"

	"github.com/kailas-cloud/pokedex/cmd/pokedex/app"
	"github.com/kailas-cloud/pokedex/internal/version"
)

func main() {
	a := app.NewApp(version.Version, version.Commit, version.Date)
	if err := a.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
