package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestWifiCmd(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "wifi")
	stdout, err := runCmd(t, "wifi", "--ssid", "mywifi", "--password", "hunter2",
		"-o", output, "-c", filepath.Join(dir, "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != output+".png" {
		t.Errorf("Unexpected output %q", stdout)
	}
	f, err := os.Open(output + ".png")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("Invalid png: %v", err)
	}
}

func TestContactCmd_DefaultFilename(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	configPath := filepath.Join(wd, "config", "config.yaml")
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	_, err := runCmd(t, "contact", "--first", "john", "--last", "DOE",
		"--phone", "(212) 555-1234", "--email", "John.Doe@hotmail.com", "-c", configPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "John-Doe_contact.png")); err != nil {
		t.Errorf("Expected default filename: %v", err)
	}
}

func TestLinkCmd_Jpg(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "link.jpg")
	_, err := runCmd(t, "link", "--url", "https://jamedeus.com", "--text", "Homepage",
		"-o", output, "-c", filepath.Join(dir, "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("Expected jpg output: %v", err)
	}
}

func TestCmd_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("WidthRatio: 7"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCmd(t, "wifi", "--ssid", "a", "-c", path); err == nil {
		t.Error("Expected config error")
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "version", "-c", "config/config.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "QR Generator 1.0.0" {
		t.Errorf("Unexpected version output %q", out)
	}
}
