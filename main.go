package main

import (
	"os"

	"github.com/scan-io-git/vulx/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
