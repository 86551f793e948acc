// Command peony creates, inspects, edits and views peony game files.
package main

import "github.com/phanxgames/peony/cmd/peony/cmd"

func main() {
	cmd.Execute()
}
