// filepath: cmd/docvault/main.go
package main

import (
	"docvault/internal/cli"
)

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
