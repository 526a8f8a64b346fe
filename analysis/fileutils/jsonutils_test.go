package fileutils

import "testing"

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"\n  ```json\n{\"a\":1}\n```\n", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"```json{\"a\":1}```", `{"a":1}`},
		{"```{\"a\":1}```", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := StripCodeFence(tc.in); got != tc.want {
			t.Fatalf("StripCodeFence(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecodeModelJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Score float64 `json:"score"`
	}

	var p payload
	if err := DecodeModelJSON("```json\n{\"score\": 0.5}\n```", &p); err != nil {
		t.Fatalf("fenced: %v", err)
	}
	if p.Score != 0.5 {
		t.Fatalf("Score=%v, want 0.5", p.Score)
	}

	p = payload{}
	if err := DecodeModelJSON("Sure! Here it is: {\"score\": -0.25} hope that helps", &p); err != nil {
		t.Fatalf("prose-wrapped: %v", err)
	}
	if p.Score != -0.25 {
		t.Fatalf("Score=%v, want -0.25", p.Score)
	}

	if err := DecodeModelJSON("   ", &p); err == nil {
		t.Fatalf("expected error for empty output")
	}
	if err := DecodeModelJSON("not json at all", &p); err == nil {
		t.Fatalf("expected error for non-JSON output")
	}
	if err := DecodeModelJSON("{\"score\": }", &p); err == nil {
		t.Fatalf("expected error for broken JSON")
	}
}
