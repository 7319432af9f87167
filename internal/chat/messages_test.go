package chat

import (
	"context"
	"testing"
	"time"

	"campustalk/server/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func messageFixture(users ...models.User) (*MessageService, *memFriends, *memMessages, *recordNotifier, *recordTyping) {
	memU := newMemUsers(users...)
	memF := newMemFriends(memU)
	memM := newMemMessages()
	notify := &recordNotifier{}
	typing := &recordTyping{}
	svc := NewMessageService(memU, memF, memM, notify, typing, zap.NewNop())
	return svc, memF, memM, notify, typing
}

func befriend(memF *memFriends, a, b string) {
	memF.friendships[[2]string{a, b}] = true
	memF.friendships[[2]string{b, a}] = true
}

func TestSend_Validation(t *testing.T) {
	alice, bob := testUsers()
	stranger := models.User{ID: "u9", Name: "Zed", Email: "zed@example.com"}

	tests := []struct {
		name     string
		receiver string
		content  string
		wantErr  error
	}{
		{name: "empty content", receiver: bob.ID, content: "", wantErr: ErrEmptyMessage},
		{name: "whitespace content", receiver: bob.ID, content: "   \n\t", wantErr: ErrEmptyMessage},
		{name: "self message", receiver: alice.ID, content: "hi", wantErr: ErrSelfMessage},
		{name: "unknown receiver", receiver: "ghost", content: "hi", wantErr: ErrReceiverNotFound},
		{name: "not friends", receiver: stranger.ID, content: "hi", wantErr: ErrNotFriends},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, memF, memM, _, typing := messageFixture(alice, bob, stranger)
			befriend(memF, alice.ID, bob.ID)

			_, err := svc.Send(context.Background(), alice.ID, tt.receiver, tt.content)
			require.ErrorIs(t, err, tt.wantErr)
			require.Empty(t, memM.msgs)
			require.Empty(t, typing.stops)
		})
	}
}

func TestSend_DeliversToBothFeeds(t *testing.T) {
	alice, bob := testUsers()
	svc, memF, memM, notify, typing := messageFixture(alice, bob)
	befriend(memF, alice.ID, bob.ID)

	view, err := svc.Send(context.Background(), alice.ID, bob.ID, "  hello there  ")
	require.NoError(t, err)
	require.Equal(t, "hello there", view.Content)
	require.False(t, view.Read)
	require.Len(t, memM.msgs, 1)

	// Sender and receiver both append via the same feed path.
	pushes := notify.byEvent(EventMessageCreated)
	require.Len(t, pushes, 2)
	require.Equal(t, bob.ID, pushes[0].UserID)
	require.Equal(t, alice.ID, pushes[1].UserID)

	// Committing a message ends the typing signal.
	require.Equal(t, [][2]string{{alice.ID, bob.ID}}, typing.stops)
}

func TestSend_LinkSegments(t *testing.T) {
	alice, bob := testUsers()
	svc, memF, _, _, _ := messageFixture(alice, bob)
	befriend(memF, alice.ID, bob.ID)

	view, err := svc.Send(context.Background(), alice.ID, bob.ID, "hello https://example.com")
	require.NoError(t, err)
	require.Equal(t, []Segment{
		{Kind: SegmentText, Text: "hello "},
		{Kind: SegmentLink, Text: "https://example.com"},
	}, view.Segments)
}

func TestHistory_OrderedByCreation(t *testing.T) {
	alice, bob := testUsers()
	svc, _, memM, _, _ := messageFixture(alice, bob)
	ctx := context.Background()

	base := time.Now()
	// Interleaved inserts from both participants, stored out of order.
	seed := []models.Message{
		{ID: "m3", SenderID: bob.ID, ReceiverID: alice.ID, Content: "third", CreatedAt: base.Add(3 * time.Second)},
		{ID: "m1", SenderID: alice.ID, ReceiverID: bob.ID, Content: "first", CreatedAt: base.Add(1 * time.Second)},
		{ID: "m4", SenderID: alice.ID, ReceiverID: bob.ID, Content: "fourth", CreatedAt: base.Add(4 * time.Second)},
		{ID: "m2", SenderID: bob.ID, ReceiverID: alice.ID, Content: "second", CreatedAt: base.Add(2 * time.Second)},
		// Unrelated conversation must not leak in.
		{ID: "mx", SenderID: "u9", ReceiverID: alice.ID, Content: "noise", CreatedAt: base},
	}
	for i := range seed {
		require.NoError(t, memM.Insert(ctx, &seed[i]))
	}

	history, err := svc.History(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	for i, wantID := range []string{"m1", "m2", "m3", "m4"} {
		require.Equal(t, wantID, history[i].ID)
	}
}

func TestMarkRead_IdempotentAndMonotonic(t *testing.T) {
	alice, bob := testUsers()
	svc, _, memM, notify, _ := messageFixture(alice, bob)
	ctx := context.Background()

	now := time.Now()
	for _, id := range []string{"m1", "m2"} {
		require.NoError(t, memM.Insert(ctx, &models.Message{
			ID: id, SenderID: bob.ID, ReceiverID: alice.ID, Content: "hi", CreatedAt: now,
		}))
	}

	n, err := svc.MarkRead(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	// Second call with nothing new: no effect, no error, no second push.
	n, err = svc.MarkRead(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	for _, msg := range memM.msgs {
		require.True(t, msg.Read)
	}

	receipts := notify.byEvent(EventMessagesRead)
	require.Len(t, receipts, 1)
	require.Equal(t, bob.ID, receipts[0].UserID)
	receipt, ok := receipts[0].Payload.(ReadReceipt)
	require.True(t, ok)
	require.Equal(t, alice.ID, receipt.ReaderID)
	require.EqualValues(t, 2, receipt.Count)
}
