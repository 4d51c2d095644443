package usecase

import (
	"context"
	"errors"
	"testing"

	chat "skillswap/internal/pkg/chat/application/domain"
)

func TestOpenConversationCreateOrGet(t *testing.T) {
	repo := newMemChatRepo()
	uc := NewOpenConversationUseCase(repo)
	ctx := context.Background()

	conv, created, err := uc.Execute(ctx, OpenConversationInput{RequesterID: "alice", ParticipantID: "bob"})
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	if !created {
		t.Fatal("expected first open to create the conversation")
	}

	// Opening from the other side must return the same thread.
	again, created, err := uc.Execute(ctx, OpenConversationInput{RequesterID: "bob", ParticipantID: "alice"})
	if err != nil {
		t.Fatalf("second open failed: %v", err)
	}
	if created {
		t.Fatal("expected second open to reuse the existing conversation")
	}
	if again.ID != conv.ID {
		t.Fatalf("got conversation %s, want %s", again.ID, conv.ID)
	}
}

func TestOpenConversationRejectsSelf(t *testing.T) {
	uc := NewOpenConversationUseCase(newMemChatRepo())
	_, _, err := uc.Execute(context.Background(), OpenConversationInput{RequesterID: "alice", ParticipantID: "alice"})
	if !errors.Is(err, chat.ErrSelfConversation) {
		t.Fatalf("got %v, want ErrSelfConversation", err)
	}
}

func TestJoinConversationChecks(t *testing.T) {
	repo := newMemChatRepo()
	conv, _ := repo.CreateConversation(context.Background(), "alice", "bob")
	uc := NewJoinConversationUseCase(repo)
	ctx := context.Background()

	if err := uc.Execute(ctx, JoinConversationInput{ConversationID: conv.ID, UserID: "alice"}); err != nil {
		t.Fatalf("participant join failed: %v", err)
	}

	err := uc.Execute(ctx, JoinConversationInput{ConversationID: conv.ID, UserID: "mallory"})
	if !errors.Is(err, chat.ErrNotParticipant) {
		t.Fatalf("got %v, want ErrNotParticipant", err)
	}

	// Unknown conversations report not-found to anyone, participant or not.
	err = uc.Execute(ctx, JoinConversationInput{ConversationID: "missing", UserID: "mallory"})
	if !errors.Is(err, chat.ErrConversationNotFound) {
		t.Fatalf("got %v, want ErrConversationNotFound", err)
	}
}

func TestListConversationsOrder(t *testing.T) {
	repo := newMemChatRepo()
	ctx := context.Background()
	first, _ := repo.CreateConversation(ctx, "alice", "bob")
	second, _ := repo.CreateConversation(ctx, "alice", "carol")

	send := NewSendMessageUseCase(repo)
	if _, _, err := send.Execute(ctx, SendMessageInput{ConversationID: second.ID, SenderID: "carol", Content: "hi"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, _, err := send.Execute(ctx, SendMessageInput{ConversationID: first.ID, SenderID: "bob", Content: "hello"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	summaries, err := NewListConversationsUseCase(repo).Execute(ctx, "alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d conversations, want 2", len(summaries))
	}
	if summaries[0].ID != first.ID {
		t.Fatalf("expected most recently active conversation first, got %s", summaries[0].ID)
	}
	if summaries[0].UnreadCount != 1 {
		t.Fatalf("got unread %d, want 1", summaries[0].UnreadCount)
	}
	if summaries[0].LastMessage == nil || summaries[0].LastMessage.Content != "hello" {
		t.Fatal("expected last message to be resolved")
	}
}
