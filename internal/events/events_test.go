package events

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestBus_EmitDeliversInOrder(t *testing.T) {
	bus := NewBus()

	var got []EventType
	bus.Subscribe(func(e Event) {
		got = append(got, e.Type)
	})

	bus.Emit(NewEvent(RunStarted, "run-1"))
	bus.Emit(NewEvent(AttemptStarted, "run-1").WithAttempt(1))
	bus.Emit(NewEvent(RunApproved, "run-1"))

	want := []EventType{RunStarted, AttemptStarted, RunApproved}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestBus_EmitStampsTime(t *testing.T) {
	bus := NewBus()

	var got Event
	bus.Subscribe(func(e Event) { got = e })

	bus.Emit(NewEvent(RunStarted, "run-1"))

	if got.Time.IsZero() {
		t.Error("expected emit to stamp event time")
	}
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()

	count := 0
	bus.Subscribe(func(Event) { count++ })
	bus.Subscribe(func(Event) { count++ })

	bus.Emit(NewEvent(RunStarted, "run-1"))

	if count != 2 {
		t.Errorf("expected both handlers to run, count = %d", count)
	}
}

func TestEvent_Builders(t *testing.T) {
	e := NewEvent(AttemptReviewed, "run-1").
		WithAttempt(2).
		WithPayload(map[string]any{"accepted": false}).
		WithError(errors.New("boom"))

	if e.Attempt == nil || *e.Attempt != 2 {
		t.Error("WithAttempt not applied")
	}
	if e.Error != "boom" {
		t.Errorf("Error = %q", e.Error)
	}
	if e.Payload == nil {
		t.Error("WithPayload not applied")
	}
}

func TestEvent_IsFailure(t *testing.T) {
	if !NewEvent(RunFailed, "run-1").IsFailure() {
		t.Error("run.failed should be a failure")
	}
	if NewEvent(RunApproved, "run-1").IsFailure() {
		t.Error("run.approved should not be a failure")
	}
}

func TestEvent_String(t *testing.T) {
	s := NewEvent(AttemptStarted, "run-1").WithAttempt(3).String()
	if !strings.Contains(s, "attempt.started") || !strings.Contains(s, "attempt=#3") {
		t.Errorf("String() = %q", s)
	}
}

func TestJSONEmitter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewJSONEmitter(&buf)
	bus := NewBus()
	bus.Subscribe(JSONEmitterHandler(emitter))

	bus.Emit(NewEvent(AttemptReviewed, "run-9").WithAttempt(1).WithPayload(map[string]any{"accepted": true}))
	bus.Emit(NewEvent(RunApproved, "run-9"))

	reader := NewJSONLineReader(&buf)

	first, err := reader.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if first.Type != AttemptReviewed || first.Run != "run-9" {
		t.Errorf("first event = %+v", first)
	}
	if first.Attempt == nil || *first.Attempt != 1 {
		t.Error("attempt number lost in round trip")
	}

	second, err := reader.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if second.Type != RunApproved {
		t.Errorf("second event type = %s", second.Type)
	}

	if _, err := reader.Read(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestJSONLineReader_SkipsBlankLines(t *testing.T) {
	input := "\n\n" + `{"type":"run.started","timestamp":"2026-01-02T15:04:05Z","run":"r1"}` + "\n"

	reader := NewJSONLineReader(strings.NewReader(input))
	e, err := reader.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if e.Type != RunStarted {
		t.Errorf("Type = %s", e.Type)
	}
}

func TestParseJSONEvent_Malformed(t *testing.T) {
	if _, err := ParseJSONEvent([]byte("{nope")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestLogHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := LogHandler(LogConfig{Writer: &buf})

	h(NewEvent(AttemptRetry, "run-1").WithAttempt(2))

	got := buf.String()
	if !strings.Contains(got, "[attempt.retry]") || !strings.Contains(got, "run-1") || !strings.Contains(got, "attempt=#2") {
		t.Errorf("log line = %q", got)
	}
}

func TestLogHandler_IncludesError(t *testing.T) {
	var buf bytes.Buffer
	h := LogHandler(LogConfig{Writer: &buf})

	h(NewEvent(RunFailed, "run-1").WithError(errors.New("generator exploded")))

	if !strings.Contains(buf.String(), "generator exploded") {
		t.Errorf("log line = %q", buf.String())
	}
}
