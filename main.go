package main

import (
	"os"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
