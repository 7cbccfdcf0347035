// Package config holds the immutable run configuration shared by the
// connectors and the relay.
package config

// Config is an immutable record consumed by connect and relay. The entry
// point is the exclusive owner: it is built once from parsed CLI flags and
// passed down by value from there on.
type Config struct {
	// Target is either a named-pipe path (e.g. \\.\pipe\<name>) or a
	// filesystem path to an Assuan rendezvous file, depending on Assuan.
	Target string

	// Assuan selects the Assuan/TCP connector instead of the named-pipe
	// connector.
	Assuan bool

	// Poll makes a retryable connect failure loop instead of erroring.
	Poll bool

	// LimitedPoll caps Poll at 300 attempts (~60s at the 200ms poll
	// interval) instead of polling forever.
	LimitedPoll bool

	// SendZero emits a zero-length write to the peer after stdin EOF.
	SendZero bool

	// ExitOnStdinEOF terminates the process the instant stdin reaches EOF.
	ExitOnStdinEOF bool

	// ExitOnPipeEOF terminates the process the instant the peer reaches
	// EOF or breaks.
	ExitOnPipeEOF bool

	// Bg requests console window hiding at startup.
	Bg bool

	// Verbose raises log verbosity to debug.
	Verbose bool
}
