package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestCliLogger(t *testing.T) {
	var buf bytes.Buffer
	debug := false
	l := NewLog(LogWithDebug(&debug), LogWithWriter(&buf))

	l.Infof("parsed %v", "2023-07-04")
	l.Debugf("hidden")
	debug = true
	l.Debugf("shown %d", 1)
	l.Errorf("failed")

	s := buf.String()
	t.Log(s)
	if s != "parsed 2023-07-04\n[DEBUG] shown 1\n[ERROR] failed\n" {
		t.Fatalf("%q", s)
	}
}

func TestCliLoggerTimePrefix(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(LogWithWriter(&buf), LogWithTime(func(level string) bool { return level == "ERROR" }))
	l.Infof("a")
	l.Errorf("b")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "a" {
		t.Fatal(lines[0])
	}
	if !strings.HasPrefix(lines[1], "[ERROR] ") || !strings.HasSuffix(lines[1], " b") || len(lines[1]) <= len("[ERROR] b") {
		t.Fatal(lines[1])
	}
}
