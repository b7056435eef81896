package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Sala Reunião 1  ", "Sala Reunião 1"},
		{"multiple spaces between words", "Sala    Azul", "Sala Azul"},
		{"tabs and newlines", "Sala\t\nAzul", "Sala Azul"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"preserve special characters", " Café & Cowork™ ", "Café & Cowork™"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ana@Example.COM", "ana@example.com"},
		{"  bia@example.com ", "bia@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"relative path kept", "/default-room.avif", "/default-room.avif"},
		{"absolute https", "https://CDN.Example.com/Rooms/A.png", "https://cdn.example.com/Rooms/A.png"},
		{"uppercase scheme", "HTTP://cdn.example.com/a.png", "http://cdn.example.com/a.png"},
		{"protocol relative rejected", "//cdn.example.com/a.png", ""},
		{"unsupported scheme", "ftp://cdn.example.com/a.png", ""},
		{"bare word", "room.png", ""},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeImageURL(tt.input); got != tt.want {
				t.Errorf("NormalizeImageURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
