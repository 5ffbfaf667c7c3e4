package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mandel "github.com/marben/mandel_explorer"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := mainCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "view.png")
	if _, err := execute(t, "render", "--width", "40", "--height", "30", "--row-align", "64", "-o", out); err != nil {
		t.Fatal(err)
	}
	img := decodePNG(t, out)
	if img.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if r, g, b, _ := img.At(20, 15).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Errorf("center pixel not black: %d %d %d", r, g, b)
	}
}

func TestRenderCommandNavigation(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nav.png")
	_, err := execute(t, "render",
		"--width", "40", "--height", "30",
		"--region", "seahorse",
		"--zoom", "20,15,120", "--zoom", "0,0,-240",
		"--pan", "3,-2",
		"--select", "5,5,25,20",
		"--mode", "hsv", "--overlay",
		"-o", out)
	if err != nil {
		t.Fatal(err)
	}
	if img := decodePNG(t, out); img.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"degenerate selection", []string{"--select", "5,5,6,6"}, errDegenerateSelection},
		{"unknown region", []string{"--region", "atlantis"}, mandel.ErrUnknownRegion},
		{"unknown mode", []string{"--mode", "plasma"}, mandel.ErrUnknownColorMode},
		{"bad height", []string{"--world-height", "-1"}, mandel.ErrInvalidHeight},
		{"no iterations", []string{"--iterations", "0"}, mandel.ErrInvalidIterations},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, "x.png")
			args := append([]string{"render", "--width", "40", "--height", "30", "-o", out}, tt.args...)
			if _, err := execute(t, args...); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if _, err := os.Stat(out); err == nil {
				t.Errorf("output written despite the error")
			}
		})
	}
}

func TestRegionsCommand(t *testing.T) {
	out, err := execute(t, "regions")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range mandel.RegionNames() {
		if !strings.Contains(out, name) {
			t.Errorf("output misses %q:\n%s", name, out)
		}
	}
}
