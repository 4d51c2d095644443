package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	chat "skillswap/internal/pkg/chat/application/domain"
)

func TestSendMessageValidation(t *testing.T) {
	repo := newMemChatRepo()
	ctx := context.Background()
	conv, _ := repo.CreateConversation(ctx, "alice", "bob")
	uc := NewSendMessageUseCase(repo)

	cases := map[string]struct {
		conversationID string
		senderID       string
		content        string
		want           error
	}{
		"blank content":        {conv.ID, "alice", "   \n\t ", chat.ErrEmptyContent},
		"over length limit":    {conv.ID, "alice", strings.Repeat("x", chat.MaxContentLength+1), chat.ErrContentTooLong},
		"unknown conversation": {"missing", "alice", "hi", chat.ErrConversationNotFound},
		"outsider sender":      {conv.ID, "mallory", "hi", chat.ErrNotParticipant},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := uc.Execute(ctx, SendMessageInput{
				ConversationID: tc.conversationID,
				SenderID:       tc.senderID,
				Content:        tc.content,
			})
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSendMessagePersists(t *testing.T) {
	repo := newMemChatRepo()
	ctx := context.Background()
	conv, _ := repo.CreateConversation(ctx, "alice", "bob")
	uc := NewSendMessageUseCase(repo)

	msg, recipient, err := uc.Execute(ctx, SendMessageInput{ConversationID: conv.ID, SenderID: "alice", Content: "  hello bob  "})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if recipient != "bob" {
		t.Fatalf("got recipient %q, want bob", recipient)
	}
	if msg.Content != "hello bob" {
		t.Fatalf("content not trimmed: %q", msg.Content)
	}
	if !msg.SeenBy.Contains("alice") || msg.SeenBy.Contains("bob") {
		t.Fatalf("seen-set should start with the sender only, got %v", msg.SeenBy)
	}

	stored, err := repo.FindConversation(ctx, conv.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.LastMessageID == nil || *stored.LastMessageID != msg.ID {
		t.Fatal("last-message pointer not advanced")
	}
	if stored.UnreadFor("bob") != 1 {
		t.Fatalf("got unread %d for bob, want 1", stored.UnreadFor("bob"))
	}
	if stored.UnreadFor("alice") != 0 {
		t.Fatalf("got unread %d for alice, want 0", stored.UnreadFor("alice"))
	}
}

func TestConcurrentSendsKeepUnreadExact(t *testing.T) {
	repo := newMemChatRepo()
	ctx := context.Background()
	conv, _ := repo.CreateConversation(ctx, "alice", "bob")
	uc := NewSendMessageUseCase(repo)

	const sends = 25
	var wg sync.WaitGroup
	errs := make(chan error, sends)
	for i := 0; i < sends; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := uc.Execute(ctx, SendMessageInput{ConversationID: conv.ID, SenderID: "alice", Content: "ping"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent send failed: %v", err)
		}
	}

	if got := repo.unreadFor(conv.ID, "bob"); got != sends {
		t.Fatalf("got unread %d, want %d: increments were lost", got, sends)
	}
}

func TestFetchMessagesAcknowledgesPage(t *testing.T) {
	repo := newMemChatRepo()
	ctx := context.Background()
	conv, _ := repo.CreateConversation(ctx, "alice", "bob")
	send := NewSendMessageUseCase(repo)
	for _, content := range []string{"one", "two", "three"} {
		if _, _, err := send.Execute(ctx, SendMessageInput{ConversationID: conv.ID, SenderID: "alice", Content: content}); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}

	fetch := NewFetchMessagesUseCase(repo)
	msgs, err := fetch.Execute(ctx, FetchMessagesInput{ConversationID: conv.ID, RequesterID: "bob"})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	for i, want := range []string{"one", "two", "three"} {
		if msgs[i].Content != want {
			t.Fatalf("message %d: got %q, want %q (expected chronological order)", i, msgs[i].Content, want)
		}
		if !msgs[i].SeenBy.Contains("bob") {
			t.Fatalf("message %d not marked seen by reader", i)
		}
	}
	if got := repo.unreadFor(conv.ID, "bob"); got != 0 {
		t.Fatalf("got unread %d after fetch, want 0", got)
	}

	// A second fetch is a no-op acknowledgement-wise.
	if _, err := fetch.Execute(ctx, FetchMessagesInput{ConversationID: conv.ID, RequesterID: "bob"}); err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if got := repo.unreadFor(conv.ID, "bob"); got != 0 {
		t.Fatalf("got unread %d after second fetch, want 0", got)
	}
}

func TestFetchMessagesPagination(t *testing.T) {
	repo := newMemChatRepo()
	ctx := context.Background()
	conv, _ := repo.CreateConversation(ctx, "alice", "bob")
	send := NewSendMessageUseCase(repo)
	for _, content := range []string{"one", "two", "three", "four"} {
		if _, _, err := send.Execute(ctx, SendMessageInput{ConversationID: conv.ID, SenderID: "alice", Content: content}); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}

	fetch := NewFetchMessagesUseCase(repo)
	newest, err := fetch.Execute(ctx, FetchMessagesInput{ConversationID: conv.ID, RequesterID: "bob", Limit: 2})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(newest) != 2 || newest[0].Content != "three" || newest[1].Content != "four" {
		t.Fatalf("unexpected newest page: %+v", newest)
	}

	cursor := newest[0].CreatedAt
	older, err := fetch.Execute(ctx, FetchMessagesInput{ConversationID: conv.ID, RequesterID: "bob", Before: &cursor, Limit: 2})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(older) != 2 || older[0].Content != "one" || older[1].Content != "two" {
		t.Fatalf("unexpected older page: %+v", older)
	}
}

func TestFetchMessagesAuthorization(t *testing.T) {
	repo := newMemChatRepo()
	ctx := context.Background()
	conv, _ := repo.CreateConversation(ctx, "alice", "bob")
	fetch := NewFetchMessagesUseCase(repo)

	_, err := fetch.Execute(ctx, FetchMessagesInput{ConversationID: conv.ID, RequesterID: "mallory"})
	if !errors.Is(err, chat.ErrNotParticipant) {
		t.Fatalf("got %v, want ErrNotParticipant", err)
	}

	_, err = fetch.Execute(ctx, FetchMessagesInput{ConversationID: "missing", RequesterID: "mallory"})
	if !errors.Is(err, chat.ErrConversationNotFound) {
		t.Fatalf("got %v, want ErrConversationNotFound", err)
	}
}
