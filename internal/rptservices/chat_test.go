package rptservices

import (
	"testing"

	"github.com/sebas/rpt-server/internal/rptcore"
)

func TestChatHandleRequestEmitsMessage(t *testing.T) {
	ctx := rptcore.NewServiceContext()
	chat := NewChat(ctx, 2000)

	result := chat.HandleRequest(42, "  Hello world  ")
	if !result.OK() {
		t.Fatalf("HandleRequest() not OK")
	}

	id, ok := chat.CheckEvent()
	if !ok {
		t.Fatal("expected a queued event")
	}
	_ = id
	event, err := chat.PollEvent()
	if err != nil {
		t.Fatalf("PollEvent() error = %v", err)
	}
	if event.Command() != "MESSAGE_FROM 42 Hello world" {
		t.Errorf("command = %q, want %q", event.Command(), "MESSAGE_FROM 42 Hello world")
	}
	if !event.TargetEveryone() {
		t.Error("expected a broadcast event")
	}
}

func TestChatHandleRequestRejectsEmptyMessage(t *testing.T) {
	ctx := rptcore.NewServiceContext()
	chat := NewChat(ctx, 2000)

	for _, msg := range []string{"", "   ", "\t\n"} {
		result := chat.HandleRequest(1, msg)
		if result.OK() {
			t.Errorf("HandleRequest(%q) = OK, want failure", msg)
		}
		errMsg, _ := result.ErrorMessage()
		if errMsg != "Message cannot be empty" {
			t.Errorf("ErrorMessage() = %q, want %q", errMsg, "Message cannot be empty")
		}
	}
}

func TestChatHandleRequestEnforcesCooldown(t *testing.T) {
	ctx := rptcore.NewServiceContext()
	chat := NewChat(ctx, 2000)

	if result := chat.HandleRequest(1, "first"); !result.OK() {
		t.Fatalf("first message rejected")
	}
	chat.PollEvent()

	result := chat.HandleRequest(1, "second")
	if result.OK() {
		t.Fatal("second message should be rejected by cooldown")
	}
	errMsg, _ := result.ErrorMessage()
	if errMsg != "Last message when sent less than 2000 ms ago" {
		t.Errorf("ErrorMessage() = %q, want the configured cooldown value", errMsg)
	}
	if _, ok := chat.CheckEvent(); ok {
		t.Error("no new event should have been emitted")
	}
}

func TestChatHandleRequestAllowsMessageAfterCooldownClears(t *testing.T) {
	ctx := rptcore.NewServiceContext()
	chat := NewChat(ctx, 2000)

	chat.HandleRequest(1, "first")
	chat.PollEvent()

	if _, err := chat.cooldown.BeginCountdown(); err != nil {
		t.Fatalf("BeginCountdown() error = %v", err)
	}
	if err := chat.cooldown.Trigger(); err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}

	result := chat.HandleRequest(1, "second")
	if !result.OK() {
		t.Fatal("message after a triggered cooldown should be accepted")
	}
}

func TestChatWaitingTimersExposesCooldownOnlyWhenReady(t *testing.T) {
	ctx := rptcore.NewServiceContext()
	chat := NewChat(ctx, 2000)

	if len(chat.WaitingTimers()) != 0 {
		t.Error("cooldown should not be Ready before any message")
	}

	chat.HandleRequest(1, "hi")
	chat.PollEvent()

	waiting := chat.WaitingTimers()
	if len(waiting) != 1 || waiting[0] != chat.cooldown {
		t.Errorf("WaitingTimers() = %v, want [cooldown]", waiting)
	}
}
