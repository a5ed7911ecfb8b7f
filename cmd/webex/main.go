package main

import (
	"os"

	"github.com/hashicorp-forge/webex-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
