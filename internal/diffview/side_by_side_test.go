package diffview

import (
	"testing"

	"github.com/interpretive-systems/contrast/diffs"
)

func TestBuildRows_SimpleReplaceAndAdd(t *testing.T) {
	d := diffs.Assemble("a.txt", []diffs.Line{
		{Origin: diffs.Context, OldLineNumber: 1, NewLineNumber: 1, Content: "line1"},
		{Origin: diffs.Deletion, OldLineNumber: 2, Content: "line2"},
		{Origin: diffs.Addition, NewLineNumber: 2, Content: "line2 changed"},
		{Origin: diffs.Context, OldLineNumber: 3, NewLineNumber: 3, Content: "line3"},
		{Origin: diffs.Addition, NewLineNumber: 4, Content: "line4"},
	}, []diffs.Header{diffs.NewHeader(1, "@@ -1,3 +1,4 @@")})

	rows := BuildRows(d)
	var adds, dels, rep, ctx, hunks int
	for _, r := range rows {
		switch r.Kind {
		case RowAdd:
			adds++
		case RowDel:
			dels++
		case RowReplace:
			rep++
		case RowContext:
			ctx++
		case RowHunk:
			hunks++
		}
	}
	if hunks != 1 {
		t.Fatalf("expected 1 hunk, got %d", hunks)
	}
	if rows[0].Kind != RowHunk || rows[0].Meta != "@@ -1,3 +1,4 @@" {
		t.Fatalf("expected hunk row first, got %+v", rows[0])
	}
	if rep != 1 {
		t.Fatalf("expected 1 replace row, got %d", rep)
	}
	if adds != 1 {
		t.Fatalf("expected 1 add row, got %d", adds)
	}
	if ctx != 2 {
		t.Fatalf("expected 2 context rows, got %d", ctx)
	}
	if dels != 0 {
		t.Fatalf("expected no deletion rows, got %d", dels)
	}
	if r := rows[2]; r.LeftNo != 2 || r.RightNo != 2 || r.Right != "line2 changed" {
		t.Fatalf("unexpected replace row: %+v", r)
	}
}

func TestBuildRows_DeletionOnly(t *testing.T) {
	d := diffs.Assemble("gone.txt", []diffs.Line{
		{Origin: diffs.Deletion, OldLineNumber: 1, Content: "old1"},
		{Origin: diffs.Deletion, OldLineNumber: 2, Content: "old2"},
	}, nil)
	rows := BuildRows(d)
	var dels int
	for _, r := range rows {
		if r.Kind == RowDel {
			dels++
			if r.RightNo != 0 || r.Right != "" {
				t.Fatalf("deletion row has a right side: %+v", r)
			}
		}
	}
	if dels != 2 {
		t.Fatalf("expected 2 deletions, got %d", dels)
	}
}

func TestBuildRows_UnanchoredHeaderIsDropped(t *testing.T) {
	d := diffs.Assemble("c.txt", []diffs.Line{
		{Origin: diffs.Deletion, OldLineNumber: 1, Content: "a"},
		{Origin: diffs.Addition, NewLineNumber: 1, Content: "b"},
	}, []diffs.Header{diffs.NewHeader(0, "@@ -1 +1 @@")})
	for _, r := range BuildRows(d) {
		if r.Kind == RowHunk {
			t.Fatalf("unanchored header produced a row: %+v", r)
		}
	}
}

func TestBuildRows_UnanchoredHunksDoNotPair(t *testing.T) {
	d := diffs.Assemble("f", []diffs.Line{
		{Origin: diffs.Deletion, OldLineNumber: 2, Content: "gone"},
		{Origin: diffs.Addition, NewLineNumber: 9, Content: "added"},
	}, []diffs.Header{
		diffs.NewHeader(0, "@@ -2 +1,0 @@"),
		diffs.NewHeader(0, "@@ -9,0 +9 @@"),
	})
	rows := BuildRows(d)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	if r := rows[0]; r.Kind != RowDel || r.LeftNo != 2 || r.Right != "" {
		t.Fatalf("expected left-only deletion, got %+v", r)
	}
	if r := rows[1]; r.Kind != RowAdd || r.RightNo != 9 || r.Left != "" {
		t.Fatalf("expected right-only addition, got %+v", r)
	}
}

func TestBuildRows_ZeroContextReplacePairsWithinHunk(t *testing.T) {
	d := diffs.Assemble("g", []diffs.Line{
		{Origin: diffs.Deletion, OldLineNumber: 5, Content: "a"},
		{Origin: diffs.Deletion, OldLineNumber: 6, Content: "b"},
		{Origin: diffs.Addition, NewLineNumber: 5, Content: "A"},
		{Origin: diffs.Addition, NewLineNumber: 6, Content: "B"},
		{Origin: diffs.Deletion, OldLineNumber: 20, Content: "x"},
		{Origin: diffs.Addition, NewLineNumber: 20, Content: "X"},
	}, []diffs.Header{
		diffs.NewHeader(0, "@@ -5,2 +5,2 @@"),
		diffs.NewHeader(0, "@@ -20 +20 @@"),
	})
	rows := BuildRows(d)
	if len(rows) != 3 {
		t.Fatalf("expected 3 replace rows, got %+v", rows)
	}
	for _, r := range rows {
		if r.Kind != RowReplace || r.LeftNo != r.RightNo {
			t.Fatalf("unexpected row %+v", r)
		}
	}
}

func TestBuildRows_HeaderlessJumpFlushes(t *testing.T) {
	d := diffs.Assemble("h", []diffs.Line{
		{Origin: diffs.Context, OldLineNumber: 1, NewLineNumber: 1, Content: "c"},
		{Origin: diffs.Deletion, OldLineNumber: 2, Content: "d"},
		{Origin: diffs.Addition, NewLineNumber: 7, Content: "e"},
	}, nil)
	rows := BuildRows(d)
	if len(rows) != 3 || rows[1].Kind != RowDel || rows[2].Kind != RowAdd {
		t.Fatalf("expected context, deletion, addition rows, got %+v", rows)
	}
}
