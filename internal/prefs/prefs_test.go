package prefs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func captureLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	return l, &buf
}

func TestLoad_MissingFileUsesDefaultsSilently(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	l, buf := captureLogger()

	p := Load("", l)
	if p != Defaults() {
		t.Fatalf("Load = %#v, want %#v", p, Defaults())
	}
	if buf.Len() != 0 {
		t.Fatalf("missing prefs logged %q, want nothing", buf.String())
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "marquee")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	body := "theme = \"Slate\"\nshow_image_urls = false\n"
	if err := os.WriteFile(filepath.Join(prefsDir, "prefs.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load("", nil)
	if p.Theme != "Slate" || p.ShowImageURLs {
		t.Fatalf("Load = %#v, want Slate without image urls", p)
	}
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	want := Prefs{Theme: "Noir", ShowImageURLs: false}
	if err := Save(prefsFile, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got := Load(prefsFile, nil); got != want {
		t.Fatalf("Load = %#v, want %#v", got, want)
	}
}

func TestLoad_Degrades(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLog bool
	}{
		{name: "blank theme", body: "theme = \"  \"\n"},
		{name: "invalid toml", body: "not valid toml {{{\n", wantLog: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(prefsFile, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			l, buf := captureLogger()
			p := Load(prefsFile, l)
			if p.Theme != defaultTheme {
				t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
			}
			if logged := strings.Contains(buf.String(), "prefs invalid"); logged != tt.wantLog {
				t.Fatalf("logged = %v, want %v (%q)", logged, tt.wantLog, buf.String())
			}
		})
	}
}
