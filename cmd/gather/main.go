// Package main is the entry point for the gather command.
package main

// main is the entry point that delegates to Execute.
func main() {
	Execute()
}
