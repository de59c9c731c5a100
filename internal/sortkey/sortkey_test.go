package sortkey_test

import (
	"slices"
	"testing"

	"github.com/HootingYard/ubercoordinator/internal/sortkey"
)

func TestKey(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"The Foo", "foo"},
		{"A Bar", "bar"},
		{"An Apple", "apple"},
		{"A is for Apple", "aisforapple"},
		{"A", "a"},
		{"The", "the"},
		{"Theatre of Blood", "theatreofblood"},
		{"Another Day", "anotherday"},
		{"12 Blind Mice", "twelveblindmice"},
		{"The 39 Steps", "thirtyninesteps"},
		{"7", "seven"},
		{"1000000000000 Stars", "onetrillionstars"},
		{"1000000000000", "onetrillion"},
		{"2000000000005 Herons", "twotrillionandfiveherons"},
		{"3000001000000 Hats", "threetrilliononemillionhats"},
		{"1000000000000000000 Ants", "onequintillionants"},
		{"99999999999999999999 x", "99999999999999999999x"},
		{"Rock & Roll", "rockandroll"},
		{"Café Ürsula", "cafeursula"},
		{"“Never Trust a Heron”", "nevertrustaheron"},
		{"  Dobson’s   Pamphlets!! ", "dobsonspamphlets"},
		{"STRASSE", "strasse"},
		{"Straße", "strasse"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := sortkey.Key(tc.title); got != tc.want {
			t.Fatalf("Key(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestKeyEquivalences(t *testing.T) {
	pairs := [][2]string{
		{"The Forest", "Forest"},
		{"12 Blind Mice", "Twelve Blind Mice"},
		{"Rock & Roll", "Rock and Roll"},
		{"Éclair", "eclair"},
	}
	for _, p := range pairs {
		if a, b := sortkey.Key(p[0]), sortkey.Key(p[1]); a != b {
			t.Fatalf("Key(%q) = %q, Key(%q) = %q; want equal", p[0], a, p[1], b)
		}
	}
}

func TestOnlyOneArticleIsDiscarded(t *testing.T) {
	if got := sortkey.Key("The A Team"); got != "ateam" {
		t.Fatalf("Key(\"The A Team\") = %q, want %q", got, "ateam")
	}
	if got := sortkey.Key("A The"); got != "the" {
		t.Fatalf("Key(\"A The\") = %q, want %q", got, "the")
	}
}

func TestKeyIsDeterministic(t *testing.T) {
	title := "The 3 Ages of Dobson & Marigold"
	first := sortkey.Key(title)
	for i := 0; i < 5; i++ {
		if got := sortkey.Key(title); got != first {
			t.Fatalf("call %d: %q != %q", i, got, first)
		}
	}
}

func TestKeysSortInDictionaryOrder(t *testing.T) {
	titles := []string{
		"Zebras",
		"The Marsh",
		"A is for Apple",
		"12 Blind Mice",
		"An Owl",
		"Badgers",
	}
	want := []string{
		"A is for Apple",
		"Badgers",
		"The Marsh",
		"An Owl",
		"12 Blind Mice",
		"Zebras",
	}
	slices.SortFunc(titles, func(a, b string) int {
		ka, kb := sortkey.Key(a), sortkey.Key(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
	if !slices.Equal(titles, want) {
		t.Fatalf("unexpected order:\n got %q\nwant %q", titles, want)
	}
}
