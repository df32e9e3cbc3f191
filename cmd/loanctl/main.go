package main

import (
	"os"

	"github.com/Dan9191/loan-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
