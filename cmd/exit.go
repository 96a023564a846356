package cmd

import "os"

// exitFunc is swappable so tests can observe exit codes without the
// process terminating.
var exitFunc = os.Exit
