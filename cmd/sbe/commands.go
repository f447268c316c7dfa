package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/uhyunpark/sbewire/pkg/jsonrec"
	"github.com/uhyunpark/sbewire/pkg/sbe"
	"github.com/uhyunpark/sbewire/pkg/storage"
)

var errUsage = errors.New("invalid arguments")

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func usageErr(line string) error {
	return fmt.Errorf("%w, usage: %s", errUsage, line)
}

func (c *cli) serialize(args []string) error {
	fs := c.flags("serialize")
	withHex := fs.Bool("hex", false, "also print the frame as hex")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return usageErr("serialize [-hex] <type> <input-json> <output-binary>")
	}
	msgType, in, out := strings.ToLower(fs.Arg(0)), fs.Arg(1), fs.Arg(2)
	if _, ok := sbe.TemplateFor(msgType); !ok {
		return fmt.Errorf("unknown type: %s. Use: order, trade, or marketdata", msgType)
	}

	text, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("input file: %w", err)
	}
	m, err := jsonrec.Parse(msgType, text)
	if err != nil {
		return err
	}
	frame, err := sbe.Encode(m)
	if err != nil {
		return err
	}
	if err := storage.WriteFrame(out, frame); err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "Serialized %s: %+v\n", msgType, m)
	fmt.Fprintf(c.stdout, "Serialized data written to: %s (%d bytes)\n", out, len(frame))
	if *withHex {
		fmt.Fprintln(c.stdout, hexutil.Encode(frame))
	}
	c.logger.Debugw("frame_serialized", "type", msgType, "bytes", len(frame), "output", out)
	return nil
}

func (c *cli) deserialize(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageErr("deserialize <input-binary> [output-json]")
	}
	frame, err := storage.ReadFrame(args[0])
	if err != nil {
		return err
	}
	m, err := sbe.DecodeAny(frame)
	if err != nil {
		return err
	}
	out, err := jsonrec.Format(m)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		if err := os.WriteFile(args[1], append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[1], err)
		}
		fmt.Fprintf(c.stdout, "Deserialized data written to: %s\n", args[1])
	} else {
		fmt.Fprintln(c.stdout, "Deserialized data:")
		fmt.Fprintln(c.stdout, string(out))
	}
	c.logger.Debugw("frame_deserialized", "type", m.Meta().Type, "bytes", len(frame))
	return nil
}

func (c *cli) schema(args []string) error {
	fs := c.flags("schema")
	asJSON := fs.Bool("json", false, "print the layout table as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	layouts := sbe.Layouts()
	if *asJSON {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(layouts)
	}

	fmt.Fprintf(c.stdout, "schema %d version %d, header %d bytes\n", sbe.SchemaID, sbe.SchemaVersion, sbe.HeaderLength)
	for _, l := range layouts {
		fmt.Fprintf(c.stdout, "\n%s (template %d, block %d bytes)\n", l.Message, l.TemplateID, l.BlockLength)
		tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  FIELD\tOFFSET\tWIDTH\tKIND")
		for _, f := range l.Fields {
			fmt.Fprintf(tw, "  %s\t%d\t%d\t%s\n", f.Name, f.Offset, f.Width, f.Kind)
		}
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%s\n", l.Tail.Name, l.Tail.Offset, l.Tail.Width, l.Tail.Kind)
		for _, f := range l.Entry {
			fmt.Fprintf(tw, "    .%s\t+%d\t%d\t%s\n", f.Name, f.Offset, f.Width, f.Kind)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (c *cli) openArchive(dir string) (storage.Archive, error) {
	if dir == "" {
		dir = c.cfg.Storage.DataDir
	}
	c.logger.Debugw("archive_opening", "dir", dir)
	return storage.NewPebbleArchive(dir)
}

func (c *cli) archive(args []string) error {
	fs := c.flags("archive")
	dir := fs.String("dir", "", "archive directory (default DATA_DIR)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usageErr("archive [-dir path] <input-binary>...")
	}

	a, err := c.openArchive(*dir)
	if err != nil {
		return err
	}
	defer a.Close()

	total := 0
	for _, path := range fs.Args() {
		data, err := storage.ReadFrame(path)
		if err != nil {
			return err
		}
		// a file may hold several frames back to back
		for off := 0; off < len(data); {
			rec, err := a.Put(data[off:])
			if err != nil {
				return fmt.Errorf("%s at offset %d: %w", path, off, err)
			}
			fmt.Fprintf(c.stdout, "%s %s (%d bytes)\n", path, rec.Key, len(rec.Frame))
			off += len(rec.Frame)
			total++
		}
	}
	fmt.Fprintf(c.stdout, "Archived %d frame(s)\n", total)
	return nil
}

func (c *cli) replay(args []string) error {
	fs := c.flags("replay")
	dir := fs.String("dir", "", "archive directory (default DATA_DIR)")
	logFile := fs.String("log", "", "read a frame log file instead of the archive")
	msgType := fs.String("type", "", "only frames of this message type")
	symbol := fs.String("symbol", "", "only frames for this symbol")
	limit := fs.Int("limit", 0, "stop after n frames")
	withHex := fs.Bool("hex", false, "print frame bytes as hex")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageErr("replay [-dir path] [-log file] [-type t] [-symbol s] [-limit n] [-hex]")
	}
	if *msgType != "" {
		if _, ok := sbe.TemplateFor(*msgType); !ok {
			return fmt.Errorf("unknown type: %s", *msgType)
		}
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AT\tTYPE\tSYMBOL\tTIMESTAMP\tBYTES")
	line := func(at string, meta sbe.Meta, frame []byte) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", at, meta.Type, meta.Symbol, meta.Timestamp, len(frame))
		if *withHex {
			fmt.Fprintf(tw, "\t%s\n", hexutil.Encode(frame))
		}
	}

	n := 0
	if *logFile != "" {
		errStop := errors.New("limit reached")
		err := storage.Replay(*logFile, func(off int, m sbe.Message, frame []byte) error {
			meta := m.Meta()
			if *msgType != "" && meta.Type != *msgType || *symbol != "" && meta.Symbol != *symbol {
				return nil
			}
			if *limit > 0 && n >= *limit {
				return errStop
			}
			line(fmt.Sprintf("@%d", off), meta, frame)
			n++
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			tw.Flush()
			return err
		}
	} else {
		a, err := c.openArchive(*dir)
		if err != nil {
			return err
		}
		defer a.Close()
		recs, err := a.Scan(storage.Query{Type: *msgType, Symbol: *symbol, Limit: *limit})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			line(rec.Key, rec.Meta, rec.Frame)
			n++
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%d frame(s)\n", n)
	return nil
}
