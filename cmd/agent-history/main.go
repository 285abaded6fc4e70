package main

import (
	"os"

	"github.com/baaaaaaaka/agent_history/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
