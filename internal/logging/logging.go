package logging

import (
	"io"
	"log"
	"os"
)

var (
	Debug   *log.Logger
	Loader  *log.Logger
	Enabled bool
)

func init() {
	// Only enable logging if CORPUSMAP_DEBUG environment variable is set
	if os.Getenv("CORPUSMAP_DEBUG") == "" {
		// Create no-op loggers that discard output
		Debug = log.New(io.Discard, "", 0)
		Loader = log.New(io.Discard, "", 0)
		Enabled = false
		return
	}

	Enabled = true

	// Open debug.log once for all loggers
	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		Debug = log.New(os.Stderr, "[DEBUG] ", log.Ldate|log.Ltime)
		Loader = log.New(os.Stderr, "[LOADER] ", log.Ldate|log.Ltime)
		return
	}

	// Create loggers with different prefixes sharing the same file
	Debug = log.New(debugFile, "", log.Lmicroseconds)
	Loader = log.New(debugFile, "", log.Lmicroseconds)
}
