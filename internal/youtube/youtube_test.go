package youtube_test

import (
	"strings"
	"testing"

	"github.com/nikbrunner/vt/internal/youtube"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=f6kdp27TYZs", "f6kdp27TYZs", true},
		{"watch url bare host", "https://youtube.com/watch?v=f6kdp27TYZs", "f6kdp27TYZs", true},
		{"watch url mobile host", "https://m.youtube.com/watch?v=f6kdp27TYZs", "f6kdp27TYZs", true},
		{"watch url extra params", "https://www.youtube.com/watch?v=f6kdp27TYZs&t=120s&list=PL1", "f6kdp27TYZs", true},
		{"short url", "https://youtu.be/f6kdp27TYZs", "f6kdp27TYZs", true},
		{"short url with params", "https://youtu.be/f6kdp27TYZs?t=42", "f6kdp27TYZs", true},
		{"embed url", "https://www.youtube.com/embed/f6kdp27TYZs", "f6kdp27TYZs", true},
		{"legacy v url", "https://www.youtube.com/v/f6kdp27TYZs", "f6kdp27TYZs", true},
		{"shorts url", "https://www.youtube.com/shorts/f6kdp27TYZs", "f6kdp27TYZs", true},
		{"live url", "https://www.youtube.com/live/f6kdp27TYZs", "f6kdp27TYZs", true},
		{"trailing path segment", "https://www.youtube.com/embed/f6kdp27TYZs/extra", "f6kdp27TYZs", true},

		{"empty", "", "", false},
		{"plain text", "not a url", "", false},
		{"http scheme", "http://www.youtube.com/watch?v=f6kdp27TYZs", "", false},
		{"ftp scheme", "ftp://www.youtube.com/watch?v=f6kdp27TYZs", "", false},
		{"spoofed host", "https://evil.com/watch?v=f6kdp27TYZs", "", false},
		{"host suffix spoof", "https://notyoutube.com/watch?v=f6kdp27TYZs", "", false},
		{"host subdomain spoof", "https://youtube.com.evil.com/watch?v=f6kdp27TYZs", "", false},
		{"channel page", "https://www.youtube.com/@somechannel", "", false},
		{"playlist page", "https://www.youtube.com/playlist?list=PL1", "", false},
		{"missing v param", "https://www.youtube.com/watch", "", false},
		{"short id", "https://youtu.be/abc", "", false},
		{"long id", "https://www.youtube.com/watch?v=f6kdp27TYZs1", "", false},
		{"id with bad chars", "https://www.youtube.com/watch?v=f6kdp27TY!s", "", false},
		{"oversized url", "https://www.youtube.com/watch?v=" + strings.Repeat("a", 3000), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := youtube.ExtractID(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ExtractID(%q) ok = %v, want %v", tt.url, ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("ExtractID(%q) = %q, want %q", tt.url, id, tt.wantID)
			}
		})
	}
}

func TestValidID(t *testing.T) {
	valid := []string{"f6kdp27TYZs", "dQw4w9WgXcQ", "___________", "aaaaaaaaaa-"}
	for _, id := range valid {
		if !youtube.ValidID(id) {
			t.Errorf("expected %q to be valid", id)
		}
	}

	invalid := []string{"", "short", "f6kdp27TYZs1", "f6kdp27TY!s", "f6kdp27 YZs"}
	for _, id := range invalid {
		if youtube.ValidID(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	if !youtube.IsValidURL("https://youtu.be/f6kdp27TYZs") {
		t.Error("expected valid")
	}
	if youtube.IsValidURL("https://example.com/f6kdp27TYZs") {
		t.Error("expected invalid")
	}
}

func TestThumbnailURL(t *testing.T) {
	got := youtube.ThumbnailURL("f6kdp27TYZs")
	want := "https://img.youtube.com/vi/f6kdp27TYZs/mqdefault.jpg"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if youtube.ThumbnailURL("not-an-id") != "" {
		t.Error("expected empty for invalid id")
	}
}
