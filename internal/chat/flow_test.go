package chat

import (
	"context"
	"testing"

	"campustalk/server/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// End-to-end service flow: request by name, accept, message with a URL,
// unread badge before and after opening the conversation.
func TestFriendAndMessageFlow(t *testing.T) {
	alice, bob := testUsers()
	memU := newMemUsers(alice, bob)
	memF := newMemFriends(memU)
	memM := newMemMessages()
	notify := &recordNotifier{}
	typing := &recordTyping{}
	log := zap.NewNop()

	friendSvc := NewFriendService(memU, memF, memM, notify, log)
	messageSvc := NewMessageService(memU, memF, memM, notify, typing, log)
	ctx := context.Background()

	// Alice requests "Bob" by display name.
	req, err := friendSvc.SendRequest(ctx, alice.ID, "Bob")
	require.NoError(t, err)
	require.Equal(t, bob.ID, req.ReceiverID)

	// Bob accepts; both directed friendship rows exist.
	_, err = friendSvc.Accept(ctx, bob.ID, req.ID)
	require.NoError(t, err)
	for _, pair := range [][2]string{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		ok, err := memF.AreFriends(ctx, pair[0], pair[1])
		require.NoError(t, err)
		require.True(t, ok)
	}

	// Alice sends a message containing a URL.
	_, err = messageSvc.Send(ctx, alice.ID, bob.ID, "hello https://example.com")
	require.NoError(t, err)

	// Bob's conversation shows one message with the link segmented out.
	history, err := messageSvc.History(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, alice.ID, history[0].SenderID)
	require.Contains(t, history[0].Segments, Segment{Kind: SegmentLink, Text: "https://example.com"})

	// Unread badge: 1 before Bob opens the conversation, 0 after.
	roster, err := friendSvc.Friends(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, []models.FriendEntry{{User: alice.ToResponse(), Unread: 1}}, roster)

	_, err = messageSvc.MarkRead(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	roster, err = friendSvc.Friends(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, []models.FriendEntry{{User: alice.ToResponse(), Unread: 0}}, roster)
}
