package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/uhyunpark/sbewire/params"
	"github.com/uhyunpark/sbewire/pkg/sbe"
	"github.com/uhyunpark/sbewire/pkg/storage"
	"github.com/uhyunpark/sbewire/pkg/util"
)

const orderRecord = `{
  "orderId": 12345,
  "symbol": "AAPL",
  "side": "BUY",
  "quantity": 1000,
  "price": 15000,
  "timestamp": 1700000000123,
  "isActive": "TRUE",
  "clientOrderId": "CLIENT-ORDER-001"
}`

func newCLI(t *testing.T) (*cli, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cfg := params.Default()
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "frames")
	return &cli{
		stdout: &stdout,
		stderr: &stderr,
		cfg:    cfg,
		logger: zap.NewNop().Sugar(),
		clock:  util.FixedClock{T: time.UnixMilli(1700000000123)},
	}, &stdout, &stderr
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSerializeDeserialize(t *testing.T) {
	c, stdout, stderr := newCLI(t)
	in := writeFile(t, "order.json", orderRecord)
	bin := filepath.Join(t.TempDir(), "order.sbe")

	if code := c.dispatch([]string{"serialize", "-hex", "order", in, bin}); code != 0 {
		t.Fatalf("serialize exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout.String(), "Serialized data written to: "+bin+" (70 bytes)") {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stdout.String(), "0x2a000100010001003930") {
		t.Errorf("hex output missing: %q", stdout)
	}

	out := filepath.Join(t.TempDir(), "order_output.json")
	stdout.Reset()
	if code := c.dispatch([]string{"deserialize", bin, out}); code != 0 {
		t.Fatalf("deserialize exit %d: %s", code, stderr)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(got)) != orderRecord {
		t.Errorf("round trip output:\n%s", got)
	}

	stdout.Reset()
	if code := c.dispatch([]string{"deserialize", bin}); code != 0 {
		t.Fatalf("deserialize to stdout exit %d", code)
	}
	if !strings.Contains(stdout.String(), `"clientOrderId": "CLIENT-ORDER-001"`) {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown command", []string{"frobnicate"}, "Unknown command: frobnicate"},
		{"serialize arity", []string{"serialize", "order"}, "Error: invalid arguments"},
		{"unknown type", []string{"serialize", "quote", "a", "b"}, "Unknown type: quote"},
		{"missing input", []string{"serialize", "order", "/nonexistent/in.json", "out"}, "Error: input file"},
		{"deserialize arity", []string{"deserialize"}, "Error: invalid arguments"},
		{"missing binary", []string{"deserialize", "/nonexistent/in.sbe"}, "Error: read /nonexistent/in.sbe"},
		{"archive arity", []string{"archive"}, "Error: invalid arguments"},
		{"replay bad type", []string{"replay", "-type", "quote"}, "unknown type: quote"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, stderr := newCLI(t)
			if code := c.dispatch(tt.args); code != 1 {
				t.Errorf("exit = %d, want 1", code)
			}
			if !strings.Contains(strings.ToLower(stderr.String()), strings.ToLower(tt.want)) {
				t.Errorf("stderr = %q, want %q", stderr, tt.want)
			}
		})
	}
}

func TestSerialize_RejectsInvalidRecord(t *testing.T) {
	c, _, stderr := newCLI(t)
	in := writeFile(t, "order.json", strings.Replace(orderRecord, `"AAPL"`, `"TOOLONGSYM"`, 1))
	out := filepath.Join(t.TempDir(), "order.sbe")
	if code := c.dispatch([]string{"serialize", "order", in, out}); code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stderr.String(), "field exceeds fixed width") {
		t.Errorf("stderr = %q", stderr)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output written for invalid record")
	}
}

func TestDeserialize_Corrupt(t *testing.T) {
	c, _, stderr := newCLI(t)
	bad := writeFile(t, "bad.sbe", "\x2a\x00\x63\x00\x01\x00\x01\x00")
	if code := c.dispatch([]string{"deserialize", bad}); code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stderr.String(), "unrecognized schema") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestDemo(t *testing.T) {
	c, stdout, stderr := newCLI(t)
	if code := c.dispatch([]string{"demo"}); code != 0 {
		t.Fatalf("demo exit %d: %s", code, stderr)
	}
	out := stdout.String()
	for _, want := range []string{
		"✓ order serialization/deserialization successful!",
		"✓ trade serialization/deserialization successful!",
		"✓ marketdata serialization/deserialization successful!",
		"Serialized size: 70 bytes",
		"Serialized size: 67 bytes",
		"Serialized size: 144 bytes",
		"All examples completed successfully!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("demo output missing %q", want)
		}
	}
}

func TestSchema(t *testing.T) {
	c, stdout, _ := newCLI(t)
	if code := c.dispatch([]string{"schema"}); code != 0 {
		t.Fatalf("schema exit %d", code)
	}
	for _, want := range []string{"order (template 1, block 42 bytes)", "clientOrderId", "marketdata (template 3, block 64 bytes)", ".side"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("schema output missing %q", want)
		}
	}

	stdout.Reset()
	if code := c.dispatch([]string{"schema", "-json"}); code != 0 {
		t.Fatalf("schema -json exit %d", code)
	}
	if !strings.Contains(stdout.String(), `"blockLength": 49`) {
		t.Errorf("json schema = %s", stdout)
	}
}

func TestArchiveAndReplay(t *testing.T) {
	c, stdout, stderr := newCLI(t)

	var stream []byte
	for _, m := range demoMessages(1) {
		b, err := sbe.Encode(m)
		if err != nil {
			t.Fatal(err)
		}
		stream = append(stream, b...)
	}
	path := filepath.Join(t.TempDir(), "all.sbe")
	if err := os.WriteFile(path, stream, 0o644); err != nil {
		t.Fatal(err)
	}

	if code := c.dispatch([]string{"archive", path}); code != 0 {
		t.Fatalf("archive exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout.String(), "Archived 3 frame(s)") {
		t.Errorf("archive output = %q", stdout)
	}

	stdout.Reset()
	if code := c.dispatch([]string{"replay", "-type", "order", "-symbol", "AAPL"}); code != 0 {
		t.Fatalf("replay exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout.String(), "1 frame(s)") || !strings.Contains(stdout.String(), "f:order:AAPL:") {
		t.Errorf("replay output = %q", stdout)
	}

	stdout.Reset()
	if code := c.dispatch([]string{"replay", "-log", path, "-limit", "2"}); code != 0 {
		t.Fatalf("replay -log exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout.String(), "2 frame(s)") || !strings.Contains(stdout.String(), "@70") {
		t.Errorf("replay -log output = %q", stdout)
	}
}

func TestReplay_SymbolWithoutType(t *testing.T) {
	c, stdout, stderr := newCLI(t)
	path := filepath.Join(t.TempDir(), "frames.log")
	var stream []byte
	for _, m := range demoMessages(1) {
		b, err := sbe.Encode(m)
		if err != nil {
			t.Fatal(err)
		}
		stream = append(stream, b...)
	}
	if err := os.WriteFile(path, stream, 0o644); err != nil {
		t.Fatal(err)
	}
	if code := c.dispatch([]string{"archive", path}); code != 0 {
		t.Fatalf("archive exit %d: %s", code, stderr)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"archive match", []string{"replay", "-symbol", "AAPL"}, "3 frame(s)"},
		{"archive miss", []string{"replay", "-symbol", "MSFT"}, "0 frame(s)"},
		{"log match", []string{"replay", "-log", path, "-symbol", "AAPL"}, "3 frame(s)"},
		{"log miss", []string{"replay", "-log", path, "-symbol", "MSFT"}, "0 frame(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout.Reset()
			if code := c.dispatch(tt.args); code != 0 {
				t.Fatalf("exit %d: %s", code, stderr)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("output = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestReplay_LogWithFilter(t *testing.T) {
	c, stdout, stderr := newCLI(t)
	path := filepath.Join(t.TempDir(), "frames.log")
	l, err := storage.NewFileLog(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range demoMessages(1) {
		b, _ := sbe.Encode(m)
		if err := l.Append(b); err != nil {
			t.Fatal(err)
		}
	}
	l.Close()

	if code := c.dispatch([]string{"replay", "-log", path, "-type", "marketdata", "-hex"}); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	out := stdout.String()
	if !strings.Contains(out, "1 frame(s)") || !strings.Contains(out, "marketdata") || !strings.Contains(out, "0x4000") {
		t.Errorf("output = %q", out)
	}
}

func TestHelp(t *testing.T) {
	c, stdout, _ := newCLI(t)
	if code := c.dispatch(nil); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout.String(), "serialize [-hex] <type> <input-json> <output-binary>") {
		t.Errorf("usage = %q", stdout)
	}
}
