package server

import (
	"testing"
	"time"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Printf(format string, args ...interface{}) {
	r.lines = append(r.lines, format)
}

func TestConsole_BasicLogging(t *testing.T) {
	next := &recordingLogger{}
	console := NewConsole(10, next)

	console.Printf("%s\n", "Test log message")

	messages := console.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	msg := messages[0]
	if msg.Message != "Test log message\n" {
		t.Errorf("Expected message 'Test log message\\n', got '%s'", msg.Message)
	}
	if msg.Level != "info" {
		t.Errorf("Expected level 'info', got '%s'", msg.Level)
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
	}
	if len(next.lines) != 1 {
		t.Errorf("Expected message forwarded to next logger, got %d lines", len(next.lines))
	}
}

func TestConsole_KeepsMostRecent(t *testing.T) {
	console := NewConsole(3, nil)

	for i := 1; i <= 5; i++ {
		console.Printf("Message %d", i)
	}
	console.Errorf("boom")

	messages := console.Messages()
	expected := []string{"Message 4", "Message 5", "boom"}
	if len(messages) != len(expected) {
		t.Fatalf("Expected %d messages, got %d", len(expected), len(messages))
	}
	for i, msg := range messages {
		if msg.Message != expected[i] {
			t.Errorf("Message %d: expected %q, got %q", i, expected[i], msg.Message)
		}
	}
	if messages[2].Level != "error" {
		t.Errorf("Expected error level, got %q", messages[2].Level)
	}
}

func TestConsole_MessagesIsACopy(t *testing.T) {
	console := NewConsole(5, nil)
	console.Printf("original")

	messages := console.Messages()
	messages[0].Message = "changed"

	if got := console.Messages()[0].Message; got != "original" {
		t.Errorf("Console state changed through returned slice: %q", got)
	}
}
