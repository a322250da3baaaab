// Package main is the entry point for the urler CLI.
package main

import "github.com/curl/urler/cmd"

func main() {
	cmd.Execute()
}
