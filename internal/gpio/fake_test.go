package gpio

import (
	"errors"
	"testing"
)

func TestFakeButtonReplaysScript(t *testing.T) {
	b := NewFakeButton([]bool{false, true, true})

	want := []bool{false, true, true}
	for i, w := range want {
		got, err := b.Pressed()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("read %d: got %v, want %v", i, got, w)
		}
	}
}

func TestFakeButtonRepeatsLastSample(t *testing.T) {
	b := NewFakeButton([]bool{false, true})

	b.Pressed()
	b.Pressed()

	// Script exhausted: last sample repeats forever.
	for i := 0; i < 5; i++ {
		got, err := b.Pressed()
		if err != nil {
			t.Fatalf("read past end: unexpected error: %v", err)
		}
		if !got {
			t.Fatal("expected last sample (pressed) to repeat")
		}
	}
}

func TestFakeButtonEmptyScript(t *testing.T) {
	b := NewFakeButton(nil)
	if _, err := b.Pressed(); err == nil {
		t.Error("expected error for empty script")
	}
}

func TestFakeButtonReadError(t *testing.T) {
	b := NewFakeButton([]bool{true})
	b.ReadError = errors.New("boom")
	if _, err := b.Pressed(); err == nil {
		t.Error("expected configured read error")
	}
}

func TestFakeButtonReset(t *testing.T) {
	b := NewFakeButton([]bool{true, false})
	b.Pressed()
	b.Pressed()
	b.Close()

	b.Reset()
	if b.Closed {
		t.Error("Reset should clear Closed")
	}
	got, _ := b.Pressed()
	if !got {
		t.Error("Reset should rewind to the first sample")
	}
}

func TestFakeLEDRecordsWrites(t *testing.T) {
	l := NewFakeLED()
	if l.On() {
		t.Error("unwritten LED should read off")
	}

	l.Set(true)
	l.Set(true)
	l.Set(false)

	if len(l.Writes) != 3 {
		t.Fatalf("expected 3 writes, got %d", len(l.Writes))
	}
	if l.On() {
		t.Error("expected last written level to be off")
	}
}

func TestFakeLEDSetError(t *testing.T) {
	l := NewFakeLED()
	l.SetError = errors.New("boom")
	if err := l.Set(true); err == nil {
		t.Error("expected configured set error")
	}
	if len(l.Writes) != 0 {
		t.Error("failed write must not be recorded")
	}
}

func TestFakeClose(t *testing.T) {
	b := NewFakeButton([]bool{false})
	l := NewFakeLED()
	b.Close()
	l.Close()
	if !b.Closed || !l.Closed {
		t.Error("Close should mark fakes closed")
	}
}
