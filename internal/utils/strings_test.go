package utils

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"portada.jpg", "portada.jpg"},
		{"../../etc/passwd.png", "passwd.png"},
		{"..\\..\\windows\\system32\\cmd.png", "cmd.png"},
		{"mi foto de viaje.png", "mi_foto_de_viaje.png"},
		{".htaccess", "htaccess"},
		{"año-nuevo.jpg", "a_o-nuevo.jpg"},
	}
	for _, c := range cases {
		if got := SanitizeFilename(c.in); got != c.want {
			t.Errorf("SanitizeFilename(%q) = %q, esperado %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeFilename_NothingUsableLeft(t *testing.T) {
	got := SanitizeFilename("----")
	if got == "" {
		t.Fatal("se esperaba un nombre generado, no vacío")
	}
	if strings.Contains(got, "/") || strings.Contains(got, "\\") || strings.HasPrefix(got, ".") {
		t.Fatalf("nombre generado inseguro: %q", got)
	}
}

func TestAllowedImageFile(t *testing.T) {
	allowed := []string{"a.png", "b.JPG", "c.jpeg", "d.gif", "e.svg", "f.webp"}
	for _, name := range allowed {
		if !AllowedImageFile(name) {
			t.Errorf("AllowedImageFile(%q) = false, esperado true", name)
		}
	}
	denied := []string{"script.exe", "shell.php", "nota.txt", "sinextension", "doble.png.exe"}
	for _, name := range denied {
		if AllowedImageFile(name) {
			t.Errorf("AllowedImageFile(%q) = true, esperado false", name)
		}
	}
}
