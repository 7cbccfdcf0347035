// Package winlog wires the core's debug/warn channels to a process-wide
// logrus logger. The core never depends on what happens to the output; it
// only calls Debugf and Warnf.
package winlog

import "github.com/sirupsen/logrus"

var std = logrus.New()

func init() {
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	std.SetLevel(logrus.WarnLevel)
}

// Init sets the logger's verbosity. Repeated calls are safe; initialization
// is idempotent aside from the level it sets.
func Init(verbose bool) {
	if verbose {
		std.SetLevel(logrus.DebugLevel)
	} else {
		std.SetLevel(logrus.WarnLevel)
	}
}

// Debugf emits a formatted debug-level message.
func Debugf(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

// Warnf emits a formatted warn-level message.
func Warnf(format string, args ...interface{}) {
	std.Warnf(format, args...)
}
