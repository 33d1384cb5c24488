package main

import (
	"os"

	"github.com/scan-io-git/scanio-checkstyle/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
