package sanitize

import (
	"net/url"
	"testing"
	"unicode/utf8"

	"aladin/src/internal/schema"
)

func TestCleanString(t *testing.T) {
	in := "  \tHello\x00World\n  "
	out := CleanString(in, 100)
	if out != "HelloWorld" {
		t.Fatalf("CleanString unexpected: %q", out)
	}
	if s := CleanString("abcdef", 3); s != "abc" {
		t.Fatalf("CleanString truncation: want 'abc', got %q", s)
	}
	if s := CleanString("파친코 전집", 3); s != "파친코" {
		t.Fatalf("CleanString should count runes: got %q", s)
	}
	if !utf8.ValidString(out) {
		t.Fatalf("CleanString produced invalid utf8")
	}
}

func TestCleanURL(t *testing.T) {
	if CleanURL("") != "" {
		t.Fatalf("CleanURL empty should be empty")
	}
	if CleanURL("not a url") != "" {
		t.Fatalf("CleanURL invalid should be empty")
	}
	if CleanURL("/product/cover.jpg") != "" {
		t.Fatalf("relative URL should be rejected")
	}
	u := CleanURL("https://image.aladin.co.kr/product/a b.jpg")
	if _, err := url.Parse(u); err != nil {
		t.Fatalf("CleanURL not parseable: %v", err)
	}
	if CleanURL("ftp://x") != "" {
		t.Fatalf("only http/https allowed")
	}
}

func TestCleanTags(t *testing.T) {
	out := CleanTags([]string{" 소설 ", "소설", "Fiction", "fiction", ""})
	want := []string{"소설", "Fiction", "fiction"}
	if len(out) != len(want) {
		t.Fatalf("CleanTags: got %v", out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("CleanTags[%d]: want %q got %q", i, want[i], out[i])
		}
	}
	if CleanTags([]string{" ", ""}) != nil {
		t.Fatalf("all-blank tags should be nil")
	}
}

func TestPlainText(t *testing.T) {
	if got := PlainText("plain text"); got != "plain text" {
		t.Fatalf("plain: %q", got)
	}
	got := PlainText("첫 줄<br/>둘째 줄 &amp; <b>강조</b>")
	if got != "첫 줄\n둘째 줄 & 강조" {
		t.Fatalf("html: %q", got)
	}
}

func TestCleanRecord(t *testing.T) {
	r := schema.Record{
		Title:    "  제목 ",
		Authors:  []string{" ", "한강"},
		Comments: "<p>설명</p>",
		Tags:     []string{"a", "a"},
		CoverURL: "javascript:alert(1)",
		Series:   &schema.Series{Name: " "},
	}
	CleanRecord(&r)
	if r.Title != "제목" {
		t.Fatalf("title: %q", r.Title)
	}
	if len(r.Authors) != 1 || r.Authors[0] != "한강" {
		t.Fatalf("authors: %v", r.Authors)
	}
	if r.Comments != "설명" {
		t.Fatalf("comments: %q", r.Comments)
	}
	if len(r.Tags) != 1 {
		t.Fatalf("tags: %v", r.Tags)
	}
	if r.CoverURL != "" {
		t.Fatalf("cover url should be dropped: %q", r.CoverURL)
	}
	if r.Series != nil {
		t.Fatalf("blank series should be dropped")
	}
	CleanRecord(nil)
}
