package main

import (
	"os"

	"portfolio-api/cmd"
	Logger "portfolio-api/utils/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		Logger.Log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
