package usecase

import "testing"

func TestIsCorrectExact(t *testing.T) {
	cases := []struct {
		response, expected string
		want               bool
	}{
		{"  Paris ", "paris", true},
		{"PARIS", "Paris", true},
		{"\tparis\n", "Paris", true},
		{"Pari", "Paris", false},
		{"", "", true},
		{"Über", "über", false}, // only ASCII letters fold
	}
	for _, c := range cases {
		if got := IsCorrectExact(c.response, c.expected); got != c.want {
			t.Fatalf("IsCorrectExact(%q, %q) = %v, want %v", c.response, c.expected, got, c.want)
		}
	}
}

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
		{"über", "uber", 1},
	}
	for _, c := range cases {
		if got := EditDistance(c.a, c.b); got != c.want {
			t.Fatalf("EditDistance(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
		if got := EditDistance(c.b, c.a); got != c.want {
			t.Fatalf("EditDistance is not symmetric for %q/%q: %d", c.a, c.b, got)
		}
	}
}

func TestFuzzyTolerance(t *testing.T) {
	cases := map[string]int{
		"":                                        1,
		"cat":                                     1,
		"photosynthesis":                          1,
		"  nineteen chars!!!  ":                   1,
		"a sentence with thirty ch":               2,
		"exactly thirty characters ok":            2,
		"this answer is a bit longer than thirty": 3,
	}
	for expected, want := range cases {
		if got := FuzzyTolerance(expected); got != want {
			t.Fatalf("FuzzyTolerance(%q) = %d, want %d", expected, got, want)
		}
	}
}

func TestIsCorrectFuzzyBoundary(t *testing.T) {
	const expected = "photosynthesis"
	if !IsCorrectFuzzy("photosynthesis", expected) {
		t.Fatal("exact answer rejected")
	}
	if !IsCorrectFuzzy("photosinthesis", expected) {
		t.Fatal("distance 1 should be accepted")
	}
	if !IsCorrectFuzzy("  PhotoSynthesi ", expected) {
		t.Fatal("distance 1 after normalisation should be accepted")
	}
	if IsCorrectFuzzy("photosinthesys", expected) {
		t.Fatal("distance 2 should be rejected")
	}
}

func TestIsCorrectFuzzyShortAnswers(t *testing.T) {
	// A transposition costs two edits, which exceeds the minimum tolerance.
	if EditDistance("dgo", "dog") != 2 || IsCorrectFuzzy("dgo", "dog") {
		t.Fatal("transposition on a three letter word should be rejected")
	}
	if !IsCorrectFuzzy("do", "dog") {
		t.Fatal("single deletion on a short word should pass")
	}
	if IsCorrectFuzzy("cat", "dog") {
		t.Fatal("unrelated word accepted")
	}
}
