package domain

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	instant := time.Date(2024, 5, 1, 9, 30, 0, 7_000_000, time.UTC)
	got := FormatTimestamp(instant)
	want := "2024-05-01T09:30:00.007Z"
	if got != want {
		t.Fatalf("FormatTimestamp = %q, want %q", got, want)
	}
}

func TestFormatTimestampConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	instant := time.Date(2024, 5, 1, 11, 30, 0, 0, loc)
	got := FormatTimestamp(instant)
	want := "2024-05-01T09:30:00.000Z"
	if got != want {
		t.Fatalf("FormatTimestamp = %q, want %q", got, want)
	}
}

func TestNewAgent(t *testing.T) {
	agent := NewAgent("20.5000.1025/XYZ", "plant-organ-annotator")
	wantID := "https://hdl.handle.net/20.5000.1025/XYZ"
	if agent.ID != wantID {
		t.Fatalf("ID = %q, want %q", agent.ID, wantID)
	}
	if agent.Identifier != wantID {
		t.Fatalf("Identifier = %q, want %q", agent.Identifier, wantID)
	}
	if agent.Type != AgentType {
		t.Fatalf("Type = %q, want %q", agent.Type, AgentType)
	}
	if agent.Name != "plant-organ-annotator" {
		t.Fatalf("Name = %q", agent.Name)
	}
}

func TestNewAgentEmptyHandle(t *testing.T) {
	agent := NewAgent("", "local")
	if agent.ID != "" {
		t.Fatalf("ID = %q, want empty", agent.ID)
	}
	if agent.Identifier != "" {
		t.Fatalf("Identifier = %q, want empty", agent.Identifier)
	}
}
