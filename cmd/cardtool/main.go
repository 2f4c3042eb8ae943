package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/worldicons/worldicons-bot/cmd/cardtool/cmd"
)

func main() {
	_ = godotenv.Load()

	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
