// Command imppc is the front end driver for the Imperative language. It
// lexes, parses and analyzes source files and dumps the intermediate
// forms.
package main

import "context"

func main() {
	if err := newImppcCmd().ExecuteContext(context.Background()); err != nil {
		exit(exitUsage)
	}
}
