package promtext

import "testing"

func TestMergeNoOverlapIsPassthrough(t *testing.T) {
	a := Parse("up 1\n")
	b := Parse("down 1\n")
	merged, stats := Merge(append(a, b...))
	if len(merged) != 2 {
		t.Fatalf("got %d families, want 2", len(merged))
	}
	if stats.Duplicates != 0 {
		t.Fatalf("got %d duplicates, want 0", stats.Duplicates)
	}
}

func TestMergeIdenticalLabelKeyFirstWins(t *testing.T) {
	a := Parse(`up{job="a"} 1` + "\n")
	b := Parse(`up{job="a"} 2` + "\n")
	merged, stats := Merge(append(a, b...))
	if len(merged) != 1 || len(merged[0].Samples) != 1 {
		t.Fatalf("got %+v", merged)
	}
	if merged[0].Samples[0].Raw != `up{job="a"} 1`+"\n" {
		t.Fatalf("expected first source's sample to win, got %q", merged[0].Samples[0].Raw)
	}
	if stats.Duplicates != 1 {
		t.Fatalf("got %d duplicates, want 1", stats.Duplicates)
	}
}

func TestMergeDistinctLabelSetsBothKept(t *testing.T) {
	a := Parse(`up{job="a"} 1` + "\n")
	b := Parse(`up{job="b"} 2` + "\n")
	merged, stats := Merge(append(a, b...))
	if len(merged) != 1 || len(merged[0].Samples) != 2 {
		t.Fatalf("got %+v", merged)
	}
	if stats.Duplicates != 0 {
		t.Fatalf("got %d duplicates, want 0", stats.Duplicates)
	}
}

func TestMergePartialOverlap(t *testing.T) {
	a := Parse(`up{job="a"} 1` + "\n" + `up{job="b"} 2` + "\n")
	b := Parse(`up{job="b"} 99` + "\n" + `up{job="c"} 3` + "\n")
	merged, stats := Merge(append(a, b...))
	if len(merged) != 1 || len(merged[0].Samples) != 3 {
		t.Fatalf("got %+v", merged)
	}
	if stats.Duplicates != 1 {
		t.Fatalf("got %d duplicates, want 1", stats.Duplicates)
	}
}

func TestMergeExamplesCappedAtThree(t *testing.T) {
	a := Parse("up 1\n")
	b := Parse("up 2\n")
	_, stats := Merge(append(a, b...))
	if stats.Duplicates != 1 {
		t.Fatalf("got %d duplicates, want 1", stats.Duplicates)
	}
	if len(stats.Examples) != 1 {
		t.Fatalf("got %d examples, want 1", len(stats.Examples))
	}

	var many []Family
	for i := 0; i < 5; i++ {
		many = append(many, Parse("dup 1\n")...)
	}
	_, stats2 := Merge(many)
	if stats2.Duplicates != 4 {
		t.Fatalf("got %d duplicates, want 4", stats2.Duplicates)
	}
	if len(stats2.Examples) != maxExamples {
		t.Fatalf("got %d examples, want %d", len(stats2.Examples), maxExamples)
	}
}

func TestMergeFirstDeclaredHelpAndTypeWin(t *testing.T) {
	a := Parse("# HELP up first desc\n# TYPE up gauge\nup{job=\"a\"} 1\n")
	b := Parse("# HELP up second desc\n# TYPE up gauge\nup{job=\"b\"} 2\n")
	merged, _ := Merge(append(a, b...))
	if len(merged) != 1 {
		t.Fatalf("got %d families, want 1", len(merged))
	}
	if merged[0].Help != "# HELP up first desc\n" {
		t.Fatalf("got help %q, want first source's", merged[0].Help)
	}
}

func TestMergePreservesFirstSeenFamilyOrder(t *testing.T) {
	a := Parse("zzz 1\n")
	b := Parse("aaa 1\n")
	merged, _ := Merge(append(a, b...))
	if len(merged) != 2 || merged[0].Name != "zzz" || merged[1].Name != "aaa" {
		t.Fatalf("got %+v", merged)
	}
}
