package sources

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple object", `{"a":1}`, `{"a":1}`},
		{"trailing junk", `{"a":1};var next = 2;`, `{"a":1}`},
		{"nested objects", `{"a":{"b":{"c":3}},"d":4}extra`, `{"a":{"b":{"c":3}},"d":4}`},
		{"braces inside strings", `{"a":"{not a brace}"}ok`, `{"a":"{not a brace}"}`},
		{"escaped quote in string", `{"a":"say \"hi\" {"}tail`, `{"a":"say \"hi\" {"}`},
		{"not an object", `[1,2,3]`, ""},
		{"empty", ``, ""},
		{"unterminated", `{"a":{`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(extractJSON([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateVisitorData(t *testing.T) {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	for i := 0; i < 20; i++ {
		v := generateVisitorData()
		if len(v) != 11 {
			t.Fatalf("length = %d, want 11", len(v))
		}
		for _, c := range v {
			if !strings.ContainsRune(chars, c) {
				t.Fatalf("unexpected character %q in %q", c, v)
			}
		}
	}
}

func TestTimedTextParse(t *testing.T) {
	raw := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.08" dur="3.12">Hello there</text>
  <text start="3.2" dur="2.5">General &amp;amp; Kenobi</text>
</transcript>`

	var tt ytTimedText
	if err := xml.Unmarshal([]byte(raw), &tt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(tt.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(tt.Lines))
	}
	if tt.Lines[0].Start != 0.08 || tt.Lines[0].Duration != 3.12 {
		t.Errorf("line 0 timing = %v/%v", tt.Lines[0].Start, tt.Lines[0].Duration)
	}
	if tt.Lines[0].Text != "Hello there" {
		t.Errorf("line 0 text = %q", tt.Lines[0].Text)
	}
	// xml decoding resolves one level; CleanCaptionText resolves the second.
	if tt.Lines[1].Text != "General &amp; Kenobi" {
		t.Errorf("line 1 text = %q", tt.Lines[1].Text)
	}
}
