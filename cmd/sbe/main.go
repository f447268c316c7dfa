// Command sbe converts between JSON records and binary frames, and
// manages the local frame archive.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/uhyunpark/sbewire/params"
	"github.com/uhyunpark/sbewire/pkg/util"
)

type cli struct {
	stdout io.Writer
	stderr io.Writer
	cfg    params.Config
	logger *zap.SugaredLogger
	clock  util.Clock
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := params.LoadFromEnv("")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		if logger, err = util.NewLogger(cfg.Log.Level); err != nil {
			fmt.Fprintf(stderr, "Error: logger: %v\n", err)
			return 1
		}
	}
	defer logger.Sync()

	c := &cli{stdout: stdout, stderr: stderr, cfg: cfg, logger: logger.Sugar(), clock: util.RealClock{}}
	return c.dispatch(args)
}

func (c *cli) dispatch(args []string) int {
	if len(args) == 0 {
		c.usage(c.stdout)
		return 0
	}

	var err error
	switch cmd := strings.ToLower(args[0]); cmd {
	case "serialize":
		err = c.serialize(args[1:])
	case "deserialize":
		err = c.deserialize(args[1:])
	case "demo":
		err = c.demo()
	case "schema":
		err = c.schema(args[1:])
	case "archive":
		err = c.archive(args[1:])
	case "replay":
		err = c.replay(args[1:])
	case "help", "-h", "--help":
		c.usage(c.stdout)
		return 0
	default:
		fmt.Fprintf(c.stderr, "Unknown command: %s\n", cmd)
		c.usage(c.stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (c *cli) usage(w io.Writer) {
	fmt.Fprint(w, `SBE Encoder/Decoder Command-Line Utility
Usage:
  serialize [-hex] <type> <input-json> <output-binary>
  deserialize <input-binary> [output-json]
  demo
  schema [-json]
  archive [-dir path] <input-binary>...
  replay [-dir path] [-log file] [-type t] [-symbol s] [-limit n] [-hex]
  help

Commands:
  serialize   - Convert JSON data to SBE binary format
  deserialize - Convert SBE binary data to JSON format
  demo        - Run demonstration examples
  schema      - Print the wire layout of every message
  archive     - Store every frame of the given files in the frame archive
  replay      - List frames from the archive or from a frame log
  help        - Show this help message

Types for serialize:
  order       - Serialize order data
  trade       - Serialize trade data
  marketdata  - Serialize market data

Examples:
  serialize order order.json order.sbe
  deserialize order.sbe order_output.json
  replay -type order -symbol AAPL -limit 10
  demo
`)
}
