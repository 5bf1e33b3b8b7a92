// Command soundtrace fingerprints and identifies audio from the command
// line: register songs, identify a clip against the registered set, and
// manage the catalog.
package main

func main() {
	Execute()
}
