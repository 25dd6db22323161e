package diffs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAggregate_CountsContentlessFiles(t *testing.T) {
	diffs := []Diff{
		Assemble("a.txt", []Line{
			{Origin: Addition, NewLineNumber: 1},
			{Origin: Addition, NewLineNumber: 2},
			{Origin: Context, OldLineNumber: 1, NewLineNumber: 3},
		}, nil),
		Assemble("b.txt", []Line{{Origin: Deletion, OldLineNumber: 4}}, nil),
		// binary change: no lines, still one changed file
		{FileName: "logo.png", Lines: []Line{}, Headers: []Header{}, Binary: true},
	}
	assert.Equal(t, Stats{FilesChanged: 3, Insertions: 2, Deletions: 1}, Aggregate(diffs))
	assert.Equal(t, Stats{}, Aggregate(nil))
}

func genLine(t *rapid.T) Line {
	o := rapid.SampledFrom([]Origin{Context, Addition, Deletion}).Draw(t, "origin")
	return Classify(o.Marker(), rapid.IntRange(1, 500).Draw(t, "old"), rapid.IntRange(1, 500).Draw(t, "new"), "")
}

func TestAggregate_MatchesLineOrigins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "files")
		diffs := make([]Diff, 0, n)
		wantIns, wantDel := 0, 0
		for i := 0; i < n; i++ {
			lines := rapid.SliceOfN(rapid.Custom(genLine), 0, 20).Draw(t, "lines")
			for _, l := range lines {
				switch l.Origin {
				case Addition:
					wantIns++
				case Deletion:
					wantDel++
				}
			}
			diffs = append(diffs, Assemble("f", lines, nil))
		}
		got := Aggregate(diffs)
		if got.FilesChanged != n || got.Insertions != wantIns || got.Deletions != wantDel {
			t.Fatalf("Aggregate = %+v, want {%d %d %d}", got, n, wantIns, wantDel)
		}
	})
}

func TestStatsString(t *testing.T) {
	assert.Equal(t, "1 file changed, 1 insertion(+), 1 deletion(-)", Stats{1, 1, 1}.String())
	assert.Equal(t, "0 files changed, 0 insertions(+), 0 deletions(-)", Stats{}.String())
	assert.Equal(t, "2 files changed, 3 insertions(+), 0 deletions(-)", Stats{2, 3, 0}.String())
}

func TestDiffCountsAndLongestLine(t *testing.T) {
	d := Assemble("x", []Line{
		{Origin: Deletion, OldLineNumber: 120},
		{Origin: Addition, NewLineNumber: 99},
		{Origin: Context, OldLineNumber: 121, NewLineNumber: 100},
	}, nil)
	assert.Equal(t, 1, d.Insertions())
	assert.Equal(t, 1, d.Deletions())
	assert.Equal(t, 120, d.LongestLineNumber())
	assert.Equal(t, 0, Assemble("empty", nil, nil).LongestLineNumber())
}
