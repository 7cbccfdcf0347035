// Command list-pipes lists Windows named pipes with optional glob filtering.
// It is an auxiliary collaborator: the core relay never calls into it.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
