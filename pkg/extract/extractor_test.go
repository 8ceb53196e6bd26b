package extract

import (
	"testing"
)

func TestTextUTF8(t *testing.T) {
	got := Text([]byte("Hello, 世界"))
	if got != "Hello, 世界" {
		t.Errorf("Text = %q", got)
	}
}

func TestTextLatin1Fallback(t *testing.T) {
	// 0xE9 is 'é' in Latin-1 and invalid as a standalone UTF-8 byte.
	got := Text([]byte{'c', 'a', 'f', 0xE9})
	if got != "café" {
		t.Errorf("Text = %q, want café", got)
	}
}

func TestTextEmpty(t *testing.T) {
	if got := Text(nil); got != "" {
		t.Errorf("Text(nil) = %q", got)
	}
}

func TestPDFCorrupt(t *testing.T) {
	_, err := PDF([]byte("this is not a pdf"))
	if err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
}

func TestPDFEmpty(t *testing.T) {
	_, err := PDF(nil)
	if err == nil {
		t.Fatal("expected error for empty pdf data")
	}
}
