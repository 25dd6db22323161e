package gitx

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
)

const samplePatch = `diff --git a/b.txt b/b.txt
index 1111111..2222222 100644
--- a/b.txt
+++ b/b.txt
@@ -2,7 +2,7 @@ section
 two
 three
 four
-five
+FIVE
 six
 seven
 eight
diff --git a/img.png b/img.png
index 3333333..4444444 100644
Binary files a/img.png and b/img.png differ
diff --git a/run.sh b/run.sh
old mode 100644
new mode 100755
diff --git a/tail.txt b/tail.txt
index 5555555..6666666 100644
--- a/tail.txt
+++ b/tail.txt
@@ -1 +1 @@
-old
\ No newline at end of file
+new
\ No newline at end of file
`

func TestParseUnified_Sample(t *testing.T) {
	deltas, err := ParseUnified(strings.NewReader(samplePatch))
	if err != nil {
		t.Fatalf("ParseUnified: %v", err)
	}
	if len(deltas) != 4 {
		t.Fatalf("expected 4 deltas, got %d: %+v", len(deltas), deltas)
	}

	b := deltas[0]
	if b.Path != "b.txt" || b.Status != StatusModified || len(b.Hunks) != 1 {
		t.Fatalf("unexpected b.txt delta: %+v", b)
	}
	h := b.Hunks[0]
	if h.Header != "@@ -2,7 +2,7 @@ section" {
		t.Fatalf("header = %q", h.Header)
	}
	if h.Anchor != 2 {
		t.Fatalf("anchor = %d, want 2", h.Anchor)
	}
	del, add := h.Lines[3], h.Lines[4]
	if del != (RawLine{Origin: OriginDeletion, OldLineNo: 5, Content: "five"}) {
		t.Fatalf("deletion = %+v", del)
	}
	if add != (RawLine{Origin: OriginAddition, NewLineNo: 5, Content: "FIVE"}) {
		t.Fatalf("addition = %+v", add)
	}
	if last := h.Lines[len(h.Lines)-1]; last.OldLineNo != 8 || last.NewLineNo != 8 {
		t.Fatalf("last context numbering = %+v", last)
	}

	if img := deltas[1]; !img.Binary || len(img.Hunks) != 0 {
		t.Fatalf("expected binary delta without hunks, got %+v", img)
	}
	if mode := deltas[2]; mode.Path != "run.sh" || len(mode.Hunks) != 0 {
		t.Fatalf("expected mode-only delta without hunks, got %+v", mode)
	}

	tail := deltas[3].Hunks[0]
	if tail.Header != "@@ -1 +1 @@" || tail.Anchor != 0 {
		t.Fatalf("tail header/anchor = %q/%d", tail.Header, tail.Anchor)
	}
	origins := make([]byte, 0, len(tail.Lines))
	for _, l := range tail.Lines {
		origins = append(origins, l.Origin)
	}
	if string(origins) != "-<+>" {
		t.Fatalf("origins = %q, want %q", origins, "-<+>")
	}
}

func TestParseUnified_NewFile(t *testing.T) {
	patch := `diff --git a/a.txt b/a.txt
new file mode 100644
index 0000000..7777777
--- /dev/null
+++ b/a.txt
@@ -0,0 +1,3 @@
+x
+y
+z
`
	deltas, err := ParseUnified(strings.NewReader(patch))
	if err != nil {
		t.Fatalf("ParseUnified: %v", err)
	}
	d := deltas[0]
	if d.Status != StatusAdded || !d.Created() {
		t.Fatalf("expected added whole-file delta, got %+v", d)
	}
	for i, l := range d.Hunks[0].Lines {
		if l.Origin != OriginAddition || l.NewLineNo != i+1 || l.OldLineNo != 0 {
			t.Fatalf("line %d = %+v", i, l)
		}
	}
}

func TestParseUnified_Empty(t *testing.T) {
	deltas, err := ParseUnified(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseUnified: %v", err)
	}
	if len(deltas) != 0 {
		t.Fatalf("expected no deltas, got %+v", deltas)
	}
}

func TestAccessorDiff_UsesRunnerArgs(t *testing.T) {
	head := plumbing.NewHash("0123456789abcdef0123456789abcdef01234567")
	var calls []string
	a := &Accessor{
		Options: Options{ContextLines: 5, DetectRenames: true},
		Runner: func(workDir string, args ...string) (string, error) {
			if workDir != "/repo" {
				t.Errorf("workDir = %q", workDir)
			}
			calls = append(calls, strings.Join(args, " "))
			return samplePatch, nil
		},
	}
	deltas, err := a.Diff(&Repository{Root: "/repo", Head: head})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(deltas) != 4 {
		t.Fatalf("expected 4 deltas, got %d", len(deltas))
	}
	if len(calls) != 1 {
		t.Fatalf("expected one git call, got %v", calls)
	}
	for _, want := range []string{"diff ", "-U5", "--find-renames", head.String() + " --", "--no-ext-diff"} {
		if !strings.Contains(calls[0], want) {
			t.Fatalf("git args %q missing %q", calls[0], want)
		}
	}
}

func TestAccessorDiff_Untracked(t *testing.T) {
	exit1 := exec.Command("sh", "-c", "exit 1").Run()
	if exit1 == nil {
		t.Fatal("expected exit code 1 error")
	}
	untrackedPatch := "diff --git a/n.txt b/n.txt\nnew file mode 100644\nindex 0000000..1111111\n--- /dev/null\n+++ b/n.txt\n@@ -0,0 +1 @@\n+hi\n"
	a := &Accessor{
		Options: Options{ContextLines: 3, IncludeUntracked: true},
		Runner: func(workDir string, args ...string) (string, error) {
			switch {
			case args[0] == "ls-files":
				return "n.txt\x00nested/\x00empty.txt\x00", nil
			case args[len(args)-1] == "nested/":
				t.Fatalf("nested repository diffed: %v", args)
				return "", nil
			case strings.Contains(strings.Join(args, " "), "--no-index") && args[len(args)-1] == "n.txt":
				return untrackedPatch, exit1
			case strings.Contains(strings.Join(args, " "), "--no-index"):
				return "", nil
			default:
				return "", nil
			}
		},
	}
	deltas, err := a.Diff(&Repository{Root: "/repo"})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(deltas) != 2 {
		t.Fatalf("expected 2 untracked deltas, got %+v", deltas)
	}
	if deltas[0].Path != "n.txt" || deltas[0].Status != StatusUntracked || len(deltas[0].Hunks) != 1 {
		t.Fatalf("unexpected n.txt delta: %+v", deltas[0])
	}
	if deltas[1].Path != "empty.txt" || len(deltas[1].Hunks) != 0 {
		t.Fatalf("unexpected empty.txt delta: %+v", deltas[1])
	}
}

func TestAccessorDiff_RunnerFailure(t *testing.T) {
	boom := errors.New("boom")
	a := &Accessor{Runner: func(string, ...string) (string, error) { return "", boom }}
	_, err := a.Diff(&Repository{Root: "/repo"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped runner error, got %v", err)
	}
	if !strings.Contains(err.Error(), "git diff") {
		t.Fatalf("expected subcommand in error, got %v", err)
	}
}
