package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/winstate/internal/winstate"
)

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{in: "12345", want: 12345},
		{in: "0x3a00007", want: 0x3a00007},
		{in: " 42 ", want: 42},
		{in: "", wantErr: true},
		{in: "0", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "0x1ffffffff", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseWindowID(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseWindowID(%q) expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseWindowID(%q): %v", tt.in, err)
		}
		if uint32(got) != tt.want {
			t.Fatalf("parseWindowID(%q)=%d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWindowFlagsValidate(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr bool
	}{
		{args: []string{"--window", "0x10"}},
		{args: []string{"--title", "Editor"}},
		{args: []string{"--active"}},
		{args: nil, wantErr: true},
		{args: []string{"--active", "--title", "Editor"}, wantErr: true},
		{args: []string{"--window", "nope"}, wantErr: true},
	}
	for _, tt := range tests {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		wf := addWindowFlags(fs)
		if err := fs.Parse(tt.args); err != nil {
			t.Fatalf("parse %v: %v", tt.args, err)
		}
		err := wf.validate()
		if (err != nil) != tt.wantErr {
			t.Fatalf("validate(%v) err=%v, wantErr=%v", tt.args, err, tt.wantErr)
		}
	}
}

func TestStateFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("path: /from/config\nfile: config.json\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	sf := addStateFlags(fs)
	if err := fs.Parse([]string{"--config", cfgPath, "--file", "editor.json"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := sf.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Path != "/from/config" {
		t.Fatalf("path=%q, want %q", cfg.Path, "/from/config")
	}
	if cfg.File != "editor.json" {
		t.Fatalf("file=%q, want %q", cfg.File, "editor.json")
	}
}

func writeState(t *testing.T, dir, data string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, winstate.DefaultFile), []byte(data), 0644); err != nil {
		t.Fatalf("write state: %v", err)
	}
}

func TestRenderPlain(t *testing.T) {
	dir := t.TempDir()
	writeState(t, dir, `{"x":10,"y":20,"width":640,"height":480,"isMaximized":true}`)
	store := winstate.New(winstate.Options{Path: dir}, nil)

	var buf bytes.Buffer
	renderPlain(&buf, store)
	out := buf.String()

	for _, want := range []string{
		"x:           10\n",
		"width:       640\n",
		"maximized:   true\n",
		"full_screen: false\n",
		"display:     -\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	dir := t.TempDir()
	store := winstate.New(winstate.Options{Path: dir}, nil)

	var buf bytes.Buffer
	if err := renderJSON(&buf, store); err != nil {
		t.Fatalf("renderJSON: %v", err)
	}

	var got struct {
		Location string         `json:"location"`
		State    map[string]any `json:"state"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if got.Location != filepath.Join(dir, winstate.DefaultFile) {
		t.Fatalf("location=%q", got.Location)
	}
	if got.State["width"] != float64(800) || got.State["height"] != float64(600) {
		t.Fatalf("state=%v, want default size", got.State)
	}
	if _, ok := got.State["x"]; ok {
		t.Fatalf("state=%v, want no x for a fresh record", got.State)
	}
}

func TestRunResetWritesDefaults(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	writeState(t, dir, `{"x":10,"y":20,"width":640,"height":480,"isMaximized":true}`)

	if rc := runReset([]string{"--path", dir}); rc != 0 {
		t.Fatalf("runReset rc=%d, want 0", rc)
	}

	data, err := os.ReadFile(filepath.Join(dir, winstate.DefaultFile))
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	rec, err := winstate.DecodeRecord(data)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	b, ok := rec.Bounds()
	if !ok || b.X != 0 || b.Y != 0 || b.Width != 800 || b.Height != 600 {
		t.Fatalf("bounds=%+v ok=%v, want 0,0 800x600", b, ok)
	}
	if rec.Maximized() {
		t.Fatalf("maximized flag survived reset")
	}
}

func TestRunConfigValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(good, []byte("default_width: 1024\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(bad, []byte("unknown_key: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if rc := runConfig([]string{"validate", "--path", good}); rc != 0 {
		t.Fatalf("validate good rc=%d, want 0", rc)
	}
	if rc := runConfig([]string{"validate", "--path", bad}); rc != 1 {
		t.Fatalf("validate bad rc=%d, want 1", rc)
	}
	if rc := runConfig([]string{"bogus"}); rc != 2 {
		t.Fatalf("bogus rc=%d, want 2", rc)
	}
}
