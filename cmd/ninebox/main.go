// main is the entry point for the ninebox CLI.
package main

import (
	"fmt"
	"os"

	"github.com/talentops/ninebox/cmd"
	"github.com/talentops/ninebox/internal/sessiondb"
)

func main() {
	cmd.SetStoreManager(sessiondb.Manager)

	err := cmd.Execute()
	sessiondb.CloseStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
