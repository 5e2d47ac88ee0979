package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/symtab/symtab/pkg/must"
	"github.com/symtab/symtab/pkg/testutil"
)

func TestSetOutput_AffectsExistingLoggers(t *testing.T) {
	logger := GetLogger("[test] ")
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(io.Discard) })

	logger.Println("hello")
	if s := buf.String(); !strings.Contains(s, "[test] ") || !strings.Contains(s, "hello") {
		t.Errorf("logged %q, want prefix and message", s)
	}
}

func TestSetOutputFile(t *testing.T) {
	fname := filepath.Join(testutil.TempDir(t), "log")
	logger := GetLogger("[file] ")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("to file")
	must.OK(SetOutputFile(""))

	content := string(must.OK1(os.ReadFile(fname)))
	if !strings.Contains(content, "[file] ") || !strings.Contains(content, "to file") {
		t.Errorf("log file contains %q", content)
	}
}

func TestSetOutputFile_BadPath(t *testing.T) {
	dir := testutil.TempDir(t)
	if err := SetOutputFile(filepath.Join(dir, "missing", "log")); err == nil {
		t.Errorf("SetOutputFile with a nonexistent dir returns nil error")
	}
}
