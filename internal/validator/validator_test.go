package validator

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=abc", true},
		{"no www", "https://youtube.com/watch?v=abc", true},
		{"http scheme", "http://www.youtube.com/watch?v=abc", true},
		{"no scheme", "www.youtube.com/watch?v=abc", true},
		{"bare host", "youtube.com/shorts/xyz", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", true},
		{"short link no dot", "youtube/abc", true},
		{"trailing garbage allowed", "https://youtube.com/watch?v=abc#t=10 extra", true},
		{"other host", "https://vimeo.com/123", false},
		{"empty", "", false},
		{"missing path", "https://youtube.com/", false},
		{"host only", "https://youtube.com", false},
		{"upper case scheme", "HTTPS://youtube.com/watch", false},
		{"upper case host", "https://YouTube.com/watch", false},
		{"host not at start", "see https://youtube.com/watch", false},
		{"subdomain", "https://m.youtube.com/watch?v=abc", false},
		{"ftp scheme", "ftp://youtube.com/watch", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.url); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
