// Command manage runs administrative tasks: schema migrations and bootstrap
// of administrator accounts.
package main

import (
	"os"

	"plantonize/internal/logger"
)

func main() {
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
