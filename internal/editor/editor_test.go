package editor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gravitas-games/hexgrid/internal/savefile"
	"github.com/gravitas-games/hexgrid/pkg/hex"
)

func newSession(t *testing.T, setup ...string) *Session {
	t.Helper()
	s := NewSession(nil, nil)
	for _, line := range setup {
		if _, err := s.Exec(line); err != nil {
			t.Fatalf("setup %q failed: %v", line, err)
		}
	}
	return s
}

func mustExec(t *testing.T, s *Session, line string) string {
	t.Helper()
	out, err := s.Exec(line)
	if err != nil {
		t.Fatalf("%q: unexpected error: %v", line, err)
	}
	return out
}

func TestParseCommand(t *testing.T) {
	cmd, ok := ParseCommand("  ADD floor a1  #FF0000 ")
	if !ok || cmd.Name != CmdAdd || len(cmd.Args) != 3 || cmd.Args[1] != "a1" {
		t.Fatalf("unexpected parse %+v", cmd)
	}
	for _, line := range []string{"", "   ", "# comment"} {
		if _, ok := ParseCommand(line); ok {
			t.Fatalf("expected %q to be skipped", line)
		}
	}
}

func TestNewUsesDefaultsAndArguments(t *testing.T) {
	s := newSession(t)
	if got := mustExec(t, s, "new"); got != `new map "new_map" 20x15` {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "new 5 4 demo"); got != `new map "demo" 5x4` {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "show set"); got != "5 | 4 | 30 | demo" {
		t.Fatalf("expected settings line, got %q", got)
	}
	if _, err := s.Exec("new x"); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestAddFloorReplacesAndAddsColors(t *testing.T) {
	s := newSession(t, "new 5 4 demo")

	if got := mustExec(t, s, "add color #FF0000"); got != "color 0 = #FF0000" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "add floor B2 0"); got != "added floor B2" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "add floor b2 #00FF00"); got != "replaced floor B2" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "show pos B2"); got != "B2: floor #00FF00" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "show color"); got != "0 | #FF0000\n1 | #00FF00" {
		t.Fatalf("unexpected palette %q", got)
	}
	if !s.Dirty() {
		t.Fatalf("expected session to be dirty")
	}
}

func TestAddRejectsBadArguments(t *testing.T) {
	s := newSession(t, "new 5 4 demo", "add color #FF0000", "del color 0")

	if _, err := s.Exec("add floor Z9 #FF0000"); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected out of bounds usage error, got %v", err)
	}
	if _, err := s.Exec("add floor A1 7"); err == nil {
		t.Fatalf("expected error for missing palette index")
	}
	if _, err := s.Exec("add floor A1 0"); err == nil {
		t.Fatalf("expected error for deleted palette index")
	}
	var perr *hex.ParseError
	if _, err := s.Exec("add floor 1A #FF0000"); !errors.As(err, &perr) {
		t.Fatalf("expected label parse error, got %v", err)
	}
	if _, err := s.Exec("add item A1 blob #FF0000 key"); err == nil {
		t.Fatalf("expected error for unknown marker")
	}
	if _, err := s.Exec("add tree A1"); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestItemIDsAndReplacement(t *testing.T) {
	s := newSession(t, "new 5 4 demo", "add color #FF0000")

	if got := mustExec(t, s, "add item A1 star 0 old key"); got != "added item 1 at A1" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "add item A1 heart 0 key"); got != "replaced item 1 at A1" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "add item C3 square 0 chest"); got != "added item 2 at C3" {
		t.Fatalf("unexpected output %q", got)
	}
	want := "1 | key | 0 | 3 | A1\n2 | chest | 0 | 5 | C3"
	if got := mustExec(t, s, "show item"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestIDsStayUniqueAfterRemove(t *testing.T) {
	s := newSession(t, "new 5 4 demo", "add color #FF0000",
		"add item A1 star 0 key", "add item B1 star 0 gem",
		"add player A1 heart 0 hero u1", "add player B1 heart 0 mage u2")

	mustExec(t, s, "remove item A1")
	mustExec(t, s, "remove player A1")
	if got := mustExec(t, s, "add item C1 star 0 chest"); got != "added item 3 at C1" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "add player C1 heart 0 rogue u3"); got != "added player 3 at C1" {
		t.Fatalf("unexpected output %q", got)
	}

	seen := map[int]bool{}
	for _, it := range s.Grid().Items() {
		if seen[it.ID] {
			t.Fatalf("duplicate item id %d", it.ID)
		}
		seen[it.ID] = true
	}
	seen = map[int]bool{}
	for _, p := range s.Grid().Players() {
		if seen[p.ID] {
			t.Fatalf("duplicate player id %d", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestAddPlayerAndUser(t *testing.T) {
	s := newSession(t, "new 5 4 demo")

	if got := mustExec(t, s, "add user u1 5f4dcc3b"); got != "added user u1" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "add user u1 deadbeef"); got != "replaced user u1" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "add player B1 circle #0000FF Sir Robin u1"); got != "added player 1 at B1" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "show player"); got != "1 | Sir Robin | u1 | 0 | 1 | B1" {
		t.Fatalf("unexpected players %q", got)
	}
	if got := mustExec(t, s, "show user"); got != "u1 | deadbeef" {
		t.Fatalf("unexpected users %q", got)
	}
	if got := mustExec(t, s, "show pos B1"); got != `B1: player 1 "Sir Robin" user=u1 circle` {
		t.Fatalf("unexpected cell %q", got)
	}
}

func TestRemove(t *testing.T) {
	s := newSession(t, "new 5 4 demo", "add floor A1 #FF0000", "add item A1 add 0 key")

	if got := mustExec(t, s, "remove item A1"); got != "removed item at A1" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "remove item A1"); got != "no item at A1" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "show pos A1"); got != "A1: floor #FF0000" {
		t.Fatalf("expected floor to remain, got %q", got)
	}
	if _, err := s.Exec("remove user u1"); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestFillClipsToMap(t *testing.T) {
	s := newSession(t, "new 5 4 demo")

	if got := mustExec(t, s, "fill C3 1 #123456"); got != "filled 7 cells" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "fill A1 1 #123456"); got != "filled 3 cells" {
		t.Fatalf("unexpected output %q", got)
	}
	if n := len(s.Grid().Floors()); n != 10 {
		t.Fatalf("expected 10 distinct floors, got %d", n)
	}
	if s.Grid().Colors().Len() != 1 {
		t.Fatalf("expected fill colour added once, got %d", s.Grid().Colors().Len())
	}
}

func TestFillAll(t *testing.T) {
	s := newSession(t, "new 5 4 demo", "add floor A1 #FF0000")

	if got := mustExec(t, s, "fill all #123456"); got != "filled 20 cells" {
		t.Fatalf("unexpected output %q", got)
	}
	if n := len(s.Grid().Floors()); n != 20 {
		t.Fatalf("expected 20 floors, got %d", n)
	}
	if got := mustExec(t, s, "show pos A1"); got != "A1: floor #123456" {
		t.Fatalf("expected A1 repainted, got %q", got)
	}
	if _, err := s.Exec("fill all"); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestRing(t *testing.T) {
	s := newSession(t, "new 5 4 demo")

	if got := mustExec(t, s, "ring C3 0"); got != "C3" {
		t.Fatalf("expected C3, got %q", got)
	}
	if got := mustExec(t, s, "ring A1 1"); got != "B1 A2" {
		t.Fatalf("expected B1 A2, got %q", got)
	}
	if got := mustExec(t, s, "ring C2 1"); len(strings.Fields(got)) != 6 {
		t.Fatalf("expected 6 cells around C2, got %q", got)
	}
	if got := mustExec(t, s, "ring C3 9"); got != "no cells 9 from C3" {
		t.Fatalf("unexpected output %q", got)
	}
	if _, err := s.Exec("ring C3 -1"); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestDistanceAndRoute(t *testing.T) {
	s := newSession(t, "new 5 4 demo")

	if got := mustExec(t, s, "distance A1 C3"); got != "3" {
		t.Fatalf("expected distance 3, got %q", got)
	}
	if got := mustExec(t, s, "distance B2 B2"); got != "0" {
		t.Fatalf("expected distance 0, got %q", got)
	}

	mustExec(t, s, "add item A2 square #000000 rock")
	got := strings.Fields(mustExec(t, s, "route A1 A3"))
	if len(got) < 3 || got[0] != "A1" || got[len(got)-1] != "A3" {
		t.Fatalf("unexpected route %v", got)
	}
	for i, label := range got {
		if label == "A2" {
			t.Fatalf("route passes through blocked A2: %v", got)
		}
		if i > 0 {
			d := hex.Distance(hex.MustParseLabel(got[i-1]), hex.MustParseLabel(label))
			if d != 1 {
				t.Fatalf("route step %s -> %s is %d cells", got[i-1], label, d)
			}
		}
	}
}

func TestSaveLoadAndRecent(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, "new 4 3 vault", "add floor B2 #ABCDEF", "add user u1 h|ash")

	if _, err := s.Exec("save"); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}

	base := filepath.Join(dir, "vault")
	want := base + savefile.Extension
	if got := mustExec(t, s, "save "+base); got != "saved "+want {
		t.Fatalf("unexpected output %q", got)
	}
	if s.Dirty() || s.Path() != want {
		t.Fatalf("expected clean session at %s, got dirty=%t path=%s", want, s.Dirty(), s.Path())
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected save file: %v", err)
	}

	mustExec(t, s, "new")
	if got := mustExec(t, s, "load "+want); !strings.HasPrefix(got, `loaded "vault"`) {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "show pos B2"); got != "B2: floor #ABCDEF" {
		t.Fatalf("unexpected cell after load %q", got)
	}
	if got := mustExec(t, s, "show user"); got != "u1 | h|ash" {
		t.Fatalf("expected escaped hash to round trip, got %q", got)
	}

	mustExec(t, s, "add floor A1 0")
	if got := mustExec(t, s, "save"); got != "saved "+want {
		t.Fatalf("expected save to reuse path, got %q", got)
	}
	if got := mustExec(t, s, "recent"); got != want {
		t.Fatalf("expected recent list [%s], got %q", want, got)
	}
	if got := mustExec(t, s, "recent clear"); got != "recent files cleared" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := mustExec(t, s, "recent"); got != "" {
		t.Fatalf("expected empty recent list, got %q", got)
	}
	if _, err := s.Exec("recent all"); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}

	if _, err := s.Exec("load " + filepath.Join(dir, "missing.hgdata")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, "new 5 4 demo", "add floor A1 #FF0000")

	out := filepath.Join(dir, "map.png")
	if got := mustExec(t, s, "render "+out); got != "rendered 128x116 to "+out {
		t.Fatalf("unexpected output %q", got)
	}
	mustExec(t, s, "add item B2 star 0 gem")
	if got := mustExec(t, s, "render "+out+" --raw"); got != "rendered 256x233 to "+out {
		t.Fatalf("unexpected output %q", got)
	}
	if _, err := s.Exec("render " + filepath.Join(dir, "map.bmp")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := s.Exec("render " + out + " --big"); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestUnknownCommandAndExit(t *testing.T) {
	s := newSession(t)
	if _, err := s.Exec("teleport A1"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if _, err := s.Exec("exit"); !IsExit(err) {
		t.Fatalf("expected exit, got %v", err)
	}
}

func TestScriptStopsOnError(t *testing.T) {
	s := newSession(t)
	var out bytes.Buffer
	err := s.Script("new 3 2 demo; add floor A1 #FF0000; add floor Q9 0; add floor B1 0", &out)
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if n := len(s.Grid().Floors()); n != 1 {
		t.Fatalf("expected script to stop after 1 floor, got %d", n)
	}
	if !strings.Contains(out.String(), "added floor A1") {
		t.Fatalf("expected output of executed commands, got %q", out.String())
	}

	if err := s.Script("exit; add floor B1 0", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(s.Grid().Floors()); n != 1 {
		t.Fatalf("expected exit to stop the script, got %d floors", n)
	}
}

func TestRunLoop(t *testing.T) {
	s := newSession(t)
	in := strings.NewReader("new 3 2 demo\nbogus\n\nshow set\nexit\nnew 9 9 late\n")
	var out bytes.Buffer

	if err := s.Run(context.Background(), in, &out, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "error: editor: unknown command") {
		t.Fatalf("expected unknown command to be reported, got %q", text)
	}
	if !strings.Contains(text, "3 | 2 | 30 | demo") {
		t.Fatalf("expected settings line, got %q", text)
	}
	if s.Grid().Settings().Name != "demo" {
		t.Fatalf("expected commands after exit to be ignored, got %q", s.Grid().Settings().Name)
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	s := newSession(t)
	var out bytes.Buffer
	if err := s.Run(context.Background(), strings.NewReader("new 2 2 tiny"), &out, "> "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Grid().Settings().Name != "tiny" {
		t.Fatalf("expected last line without newline to run, got %q", s.Grid().Settings().Name)
	}
}
