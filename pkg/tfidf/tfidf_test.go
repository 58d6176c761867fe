package tfidf

import (
	"testing"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Wireless Mouse (Logitech)", "wireless mouse logitech"},
		{"  USB   Flash-Drive 32GB ", "usb flash drive 32gb"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Preprocess(tt.in); got != tt.want {
			t.Errorf("Preprocess(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQueryRanksRelevantDocumentFirst(t *testing.T) {
	v := New()
	v.Fit([]string{"Wireless Mouse Logitech", "USB Flash Drive 32GB"})

	matches := v.Query("mouse", 30)
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(matches))
	}
	if matches[0].Index != 0 {
		t.Errorf("expected document 0 ranked first, got %d", matches[0].Index)
	}
	if matches[0].Score <= 0 {
		t.Errorf("expected positive score, got %f", matches[0].Score)
	}
}

func TestQueryNoMatchReturnsEmpty(t *testing.T) {
	v := New()
	v.Fit([]string{"Wireless Mouse Logitech", "USB Flash Drive 32GB"})

	if matches := v.Query("zzz-no-match", 30); len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestQueryIsIdempotent(t *testing.T) {
	docs := []string{
		"Wireless Mouse Logitech",
		"Mechanical Keyboard",
		"Wireless Keyboard and Mouse Combo",
	}
	v := New()
	v.Fit(docs)
	first := v.Query("wireless mouse", 10)

	w := New()
	w.Fit(docs)
	second := w.Query("wireless mouse", 10)

	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Index != second[i].Index || first[i].Score != second[i].Score {
			t.Errorf("result %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestQueryTiesKeepCorpusOrder(t *testing.T) {
	// Identical documents produce identical scores; the stable sort must
	// keep them in corpus order.
	v := New()
	v.Fit([]string{"blue widget", "blue widget", "blue widget"})

	matches := v.Query("widget", 10)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i, m := range matches {
		if m.Index != i {
			t.Errorf("position %d: expected corpus index %d, got %d", i, i, m.Index)
		}
	}
}

func TestQueryRespectsTopK(t *testing.T) {
	v := New()
	v.Fit([]string{"widget a", "widget b", "widget c", "widget d"})

	if matches := v.Query("widget", 2); len(matches) != 2 {
		t.Errorf("expected topK=2 matches, got %d", len(matches))
	}
}

func TestBestMatch(t *testing.T) {
	v := New()
	v.Fit([]string{"Electronics gadgets and devices", "Office supplies paper pens"})

	m, ok := v.BestMatch("usb gadget electronics")
	if !ok {
		t.Fatal("expected a best match")
	}
	if m.Index != 0 {
		t.Errorf("expected document 0, got %d", m.Index)
	}

	if _, ok := v.BestMatch("qwertyuiop"); ok {
		t.Error("expected no match for nonsense query")
	}
}

func TestFitEmptyCorpus(t *testing.T) {
	v := New()
	v.Fit(nil)
	if matches := v.Query("anything", 5); matches != nil {
		t.Errorf("expected nil matches on empty corpus, got %v", matches)
	}
}
