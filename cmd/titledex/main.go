// Package main provides the titledex CLI: the similarity API server plus
// one-shot checking and corpus loading tools.
//
// Usage:
//
//	titledex serve            - run the HTTP API server
//	titledex check            - check one title against a CSV table
//	titledex load             - load a CSV table into the stored corpus
package main

import (
	"fmt"
	"os"

	"github.com/thesisdesk/titledex/cmd/titledex/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
