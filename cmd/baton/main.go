// Command baton relays stdin/stdout to a Windows named pipe or, in Assuan
// mode, to a local TCP endpoint described by a GnuPG-style rendezvous file.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
