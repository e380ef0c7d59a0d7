// Package main is the entry point for the planview CLI.
package main

import "planview.dev/pkg/planview/cmd"

func main() {
	cmd.Execute()
}
