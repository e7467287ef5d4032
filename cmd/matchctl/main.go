// Command matchctl runs the matching engine from a terminal against the
// configured store. It shares configuration with the HTTP server.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
