// Package main provides the entry point for the philowalk CLI.
//
// philowalk plays "Getting to Philosophy": starting from an English Wikipedia
// article it keeps following the first usable link in the article body until
// it reaches an article whose URL contains "Philosophy".
//
// Usage:
//
//	philowalk https://en.wikipedia.org/wiki/Cat
//	philowalk links https://en.wikipedia.org/wiki/Cat
//
// See --help for all available options.
package main

func main() {
	Execute()
}
