package store

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlanChunksBasics(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		if got := PlanChunks("", 10); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("non-positive max", func(t *testing.T) {
		if got := PlanChunks("hello", 0); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("text shorter than max", func(t *testing.T) {
		got := PlanChunks("hello", 100)
		want := []Bound{{Start: 0, End: 5}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}

func TestPlanChunksInvariants(t *testing.T) {
	texts := []string{
		strings.Repeat("word ", 500),
		strings.Repeat("x", 95),
		"a " + strings.Repeat("supercalifragilistic", 10) + " b",
		strings.TrimSpace(strings.Repeat("mixed length words appear here ", 40)),
	}
	for _, maxChars := range []int{7, 20, 64} {
		for ti, text := range texts {
			bounds := PlanChunks(text, maxChars)
			if len(bounds) == 0 {
				t.Fatalf("text %d max %d: no bounds", ti, maxChars)
			}
			if bounds[0].Start != 0 {
				t.Errorf("text %d max %d: first start = %d", ti, maxChars, bounds[0].Start)
			}
			if bounds[len(bounds)-1].End != len(text) {
				t.Errorf("text %d max %d: last end = %d, want %d", ti, maxChars, bounds[len(bounds)-1].End, len(text))
			}
			for i, b := range bounds {
				if b.End <= b.Start {
					t.Errorf("text %d max %d: empty bound %v at %d", ti, maxChars, b, i)
				}
				if b.End-b.Start > maxChars {
					t.Errorf("text %d max %d: bound %v exceeds max", ti, maxChars, b)
				}
				if i > 0 && b.Start != bounds[i-1].End {
					t.Errorf("text %d max %d: gap between %v and %v", ti, maxChars, bounds[i-1], b)
				}
			}
		}
	}
}

func TestPlanChunksSnapsToSpace(t *testing.T) {
	// Space at offset 7 is past 0.6*10, so the first cut snaps back to it.
	text := "abcdefg hi jklmnop"
	got := PlanChunks(text, 10)
	want := []Bound{{Start: 0, End: 7}, {Start: 7, End: 17}, {Start: 17, End: 18}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlanChunksEarlySpaceIgnored(t *testing.T) {
	// The only space sits at offset 2, before the snap threshold, so the
	// cut stays at maxChars to keep chunks large.
	text := "ab cdefghijklmno"
	got := PlanChunks(text, 10)
	want := []Bound{{Start: 0, End: 10}, {Start: 10, End: 16}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlanChunksLongWordHardCut(t *testing.T) {
	text := strings.Repeat("x", 25)
	got := PlanChunks(text, 10)
	want := []Bound{{Start: 0, End: 10}, {Start: 10, End: 20}, {Start: 20, End: 25}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlanChunksRuneBoundaries(t *testing.T) {
	texts := []string{
		strings.Repeat("日本語の字幕", 8),
		strings.Repeat("👍", 9),
		"résumé " + strings.Repeat("né", 12),
	}
	for ti, text := range texts {
		for _, maxChars := range []int{5, 10, 17} {
			bounds := PlanChunks(text, maxChars)
			if len(bounds) == 0 || bounds[0].Start != 0 || bounds[len(bounds)-1].End != len(text) {
				t.Fatalf("text %d max %d: bounds %v do not cover the text", ti, maxChars, bounds)
			}
			for i, b := range bounds {
				if b.End-b.Start > maxChars {
					t.Errorf("text %d max %d: bound %v exceeds max", ti, maxChars, b)
				}
				if i > 0 && b.Start != bounds[i-1].End {
					t.Errorf("text %d max %d: gap between %v and %v", ti, maxChars, bounds[i-1], b)
				}
				if !utf8.ValidString(text[b.Start:b.End]) {
					t.Errorf("text %d max %d: bound %v tears a rune: %q", ti, maxChars, b, text[b.Start:b.End])
				}
			}
		}
	}
}

func TestPlanChunksDeterministic(t *testing.T) {
	text := strings.Repeat("deterministic output ", 50)
	a := PlanChunks(text, 33)
	b := PlanChunks(text, 33)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different bounds")
	}
}
