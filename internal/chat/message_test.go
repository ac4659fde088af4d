package chat

import (
	"reflect"
	"testing"
)

func TestBuildTranscript(t *testing.T) {
	history := []Message{
		{Text: "What is an ETF?", Sender: SenderUser, Topic: "Investing"},
		{Text: "An exchange-traded fund.", Sender: SenderBot, Topic: "Investing"},
	}

	got := BuildTranscript("sys", history, "And a mutual fund?")
	want := []Turn{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "What is an ETF?"},
		{Role: RoleAssistant, Content: "An exchange-traded fund."},
		{Role: RoleUser, Content: "And a mutual fund?"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildTranscript() = %+v, want %+v", got, want)
	}
}

func TestBuildTranscript_EmptyHistory(t *testing.T) {
	got := BuildTranscript("sys", nil, "hi")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Role != RoleSystem || got[1].Role != RoleUser {
		t.Errorf("unexpected roles: %+v", got)
	}
}

func TestDiscussPrompt(t *testing.T) {
	if got := DiscussPrompt("Bonds"); got != "Let's discuss Bonds" {
		t.Errorf("DiscussPrompt() = %q", got)
	}
}
