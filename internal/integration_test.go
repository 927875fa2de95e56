// Package internal contains integration tests that drive the console, title,
// buffer and logging packages together the way the condrv CLI wires them.
package internal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Iron-Ham/condrv/internal/buffer"
	"github.com/Iron-Ham/condrv/internal/conapi"
	"github.com/Iron-Ham/condrv/internal/config"
	"github.com/Iron-Ham/condrv/internal/console"
	"github.com/Iron-Ham/condrv/internal/errors"
	"github.com/Iron-Ham/condrv/internal/logging"
)

func newConsole(t *testing.T, cfg *config.Config) (*console.Console, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var logs, out bytes.Buffer
	logger := logging.NewLoggerWithWriter(&logs, logging.LevelDebug)
	con, err := console.NewFromConfig(cfg, logger.WithComponent("console"), console.WithOutput(&out))
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	return con, &logs, &out
}

// TestTitleRoundTrip sets each reference title through one path and reads it
// back through both getters with progressively smaller buffers.
func TestTitleRoundTrip(t *testing.T) {
	con, _, _ := newConsole(t, config.Default())

	if ok, err := con.SetConsoleTitleA(buffer.AnsiFromText("QUITEALONGTITLE")); !ok || err != nil {
		t.Fatalf("SetConsoleTitleA() = %v, %v", ok, err)
	}

	tests := []struct {
		ansiSize int
		ansiN    int
		ansiText string
		wideSize int
		wideText string
	}{
		{256, 15, "QUITEALONGTITLE", 512, "QUITEALONGTITLE"},
		{16, 15, "QUITEALONGTITLE", 32, "QUITEALONGTITLE"},
		{15, 0, "", 30, "QUITEALONGTITL"},
		{8, 0, "", 16, "QUITEAL"},
		{1, 0, "", 2, ""},
	}

	for _, tt := range tests {
		abuf, _ := buffer.NewAnsi(tt.ansiSize)
		n, err := con.GetConsoleTitleA(abuf, tt.ansiSize)
		if err != nil {
			t.Fatalf("GetConsoleTitleA(%d) error = %v", tt.ansiSize, err)
		}
		if n != tt.ansiN || abuf.Text() != tt.ansiText {
			t.Errorf("GetConsoleTitleA(%d) = %d %q, want %d %q", tt.ansiSize, n, abuf.Text(), tt.ansiN, tt.ansiText)
		}

		wbuf, _ := buffer.NewWide(tt.wideSize / 2)
		n, err = con.GetConsoleTitleW(wbuf, tt.wideSize)
		if err != nil {
			t.Fatalf("GetConsoleTitleW(%d) error = %v", tt.wideSize, err)
		}
		text, err := wbuf.Text()
		if err != nil {
			t.Fatalf("Text() error = %v", err)
		}
		if n != 15 || text != tt.wideText {
			t.Errorf("GetConsoleTitleW(%d) = %d %q, want 15 %q", tt.wideSize, n, text, tt.wideText)
		}
	}
}

// TestSurrogateTitle checks that a wide read splitting a surrogate pair leaves
// a buffer whose strict decode fails at the split.
func TestSurrogateTitle(t *testing.T) {
	con, _, _ := newConsole(t, config.Default())

	if _, err := con.SetConsoleTitleW(buffer.WideFromText("-{\U00010A60}-")); err != nil {
		t.Fatalf("SetConsoleTitleW() error = %v", err)
	}

	wbuf, _ := buffer.NewWide(4)
	n, err := con.GetConsoleTitleW(wbuf, 8)
	if err != nil || n != 6 {
		t.Fatalf("GetConsoleTitleW(8) = %d, %v, want 6", n, err)
	}
	_, err = wbuf.Text()
	if !errors.IsDecodeError(err) {
		t.Fatalf("Text() error = %v, want decode error", err)
	}
	if got := wbuf.Repr(); got != `U'-{\ud802\x00'` {
		t.Errorf("Repr() = %s", got)
	}

	// The ANSI view of the same title replaces the pair with one '?'.
	abuf, _ := buffer.NewAnsi(6)
	if n, _ := con.GetConsoleTitleA(abuf, 6); n != 5 || abuf.Text() != "-{?}-" {
		t.Errorf("GetConsoleTitleA(6) = %d %q, want 5 %q", n, abuf.Text(), "-{?}-")
	}
}

// TestConfiguredConsole builds a console from a non-default configuration and
// checks that every setting reaches its call.
func TestConfiguredConsole(t *testing.T) {
	cfg := config.Default()
	cfg.Console.Codepage = 1251
	cfg.Console.OutputCodepage = 1252
	cfg.Console.InitialTitle = "Да"
	cfg.Console.CursorSize = 50
	cfg.Console.CursorVisible = false
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Fatalf("Validate() = %v", errs)
	}

	con, logs, out := newConsole(t, cfg)

	abuf, _ := buffer.NewAnsi(8)
	if n, _ := con.GetConsoleTitleA(abuf, 8); n != 2 || !bytes.Equal(abuf.Raw()[:3], []byte{0xC4, 0xE0, 0}) {
		t.Errorf("GetConsoleTitleA(8) = %d %v", n, abuf.Raw())
	}

	stdout := con.GetStdHandle(conapi.StdOutputHandle)
	var info conapi.CursorInfo
	if err := con.GetConsoleCursorInfo(stdout, &info); err != nil {
		t.Fatalf("GetConsoleCursorInfo() error = %v", err)
	}
	if info != (conapi.CursorInfo{Size: 50, Visible: false}) {
		t.Errorf("cursor = %+v", info)
	}

	written := conapi.NewDwordRef()
	euro, _ := buffer.NewAnsi(3)
	copy(euro.Raw(), []byte{0x80, '!'})
	if err := con.WriteConsoleA(stdout, euro, 2, written); err != nil {
		t.Fatalf("WriteConsoleA() error = %v", err)
	}
	if out.String() != "€!" || written.Get() != 2 {
		t.Errorf("WriteConsoleA wrote %q (%d)", out.String(), written.Get())
	}

	var calls []string
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		if call, ok := entry["call"].(string); ok {
			calls = append(calls, call)
		}
	}
	want := []string{"GetConsoleTitleA", "GetStdHandle", "GetConsoleCursorInfo", "WriteConsoleA"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("logged calls = %v, want %v", calls, want)
	}
}
