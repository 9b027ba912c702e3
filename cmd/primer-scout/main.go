package main

import (
	"os"

	"github.com/yash27-lab/primer-scout/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdout, os.Stderr))
}
