package mayo

import (
	"fmt"
	"io"
	"os"
)

var debugOn = os.Getenv("MAYO_DEBUG") == "1"

// dbg writes a trace line to stderr when MAYO_DEBUG=1. Never pass secret
// key material to this function.
func dbg(w io.Writer, format string, args ...any) {
	if debugOn {
		fmt.Fprintf(w, format, args...)
	}
}
