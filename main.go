// Package main is the entry point for the docsight CLI.
package main

import "docsight.dev/pkg/docsight/cmd"

func main() {
	cmd.Execute()
}
