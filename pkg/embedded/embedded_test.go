package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func resetForTest(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

// TestNotInitialized 未初始化时所有访问都返回 ErrNotInitialized
func TestNotInitialized(t *testing.T) {
	resetForTest(t)
	Init(nil)

	if IsInitialized() {
		t.Fatal("Init(nil) should leave the package uninitialized")
	}
	if _, err := ReadFile("data/card.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile error = %v, want ErrNotInitialized", err)
	}
	if _, err := Open("data/card.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open error = %v, want ErrNotInitialized", err)
	}
	if Exists("data/card.yaml") {
		t.Error("Exists should be false before Init")
	}
}

func TestReadFile(t *testing.T) {
	resetForTest(t)
	Init(fstest.MapFS{
		"data/card.yaml":  {Data: []byte("recipient: Test\n")},
		"data/extra.yaml": {Data: []byte("x: 1\n")},
	})

	data, err := ReadFile("./data/card.yaml")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "recipient: Test\n" {
		t.Errorf("unexpected content %q", data)
	}

	if !Exists("data/extra.yaml") {
		t.Error("data/extra.yaml should exist")
	}
	if Exists("data/missing.yaml") {
		t.Error("data/missing.yaml should not exist")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob matched %d files, want 2", len(matches))
	}
}

// TestUnknownPrefix 非 data/ 路径不会落到嵌入文件系统
func TestUnknownPrefix(t *testing.T) {
	resetForTest(t)
	Init(fstest.MapFS{"data/card.yaml": {Data: []byte("a")}})

	if IsEmbeddedPath("assets/red.jpg") {
		t.Error("assets/ should not be an embedded path")
	}
	if !IsEmbeddedPath("./data/card.yaml") {
		t.Error("data/ should be an embedded path")
	}
	if _, err := ReadFile("assets/red.jpg"); err == nil {
		t.Error("expected an error for an unknown prefix")
	}
}
