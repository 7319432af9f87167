package chat

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campustalk/server/internal/models"
	"campustalk/server/internal/store"
)

// In-memory store fakes. They honor the same contracts the Postgres
// implementations do, including the atomic accept.

type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{users: make(map[string]models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) SearchByName(_ context.Context, name string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(name)) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) TagExists(_ context.Context, tag string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Tag == tag {
			return true, nil
		}
	}
	return false, nil
}

type memFriends struct {
	mu          sync.Mutex
	users       *memUsers
	requests    map[string]models.FriendRequest
	friendships map[[2]string]bool
}

func newMemFriends(users *memUsers) *memFriends {
	return &memFriends{
		users:       users,
		requests:    make(map[string]models.FriendRequest),
		friendships: make(map[[2]string]bool),
	}
}

func (m *memFriends) CreateRequest(_ context.Context, req *models.FriendRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = *req
	return nil
}

func (m *memFriends) GetRequestByID(_ context.Context, id string) (*models.FriendRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &req, nil
}

func (m *memFriends) GetRequestBetween(_ context.Context, userA, userB string) (*models.FriendRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.FriendRequest
	for _, req := range m.requests {
		req := req
		samePair := (req.SenderID == userA && req.ReceiverID == userB) ||
			(req.SenderID == userB && req.ReceiverID == userA)
		if samePair && (latest == nil || req.CreatedAt.After(latest.CreatedAt)) {
			latest = &req
		}
	}
	if latest == nil {
		return nil, store.ErrNotFound
	}
	return latest, nil
}

func (m *memFriends) DeleteRequest(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.requests, id)
	return nil
}

func (m *memFriends) UpdateRequestStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return store.ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	m.requests[id] = req
	return nil
}

func (m *memFriends) AcceptRequest(_ context.Context, req *models.FriendRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.requests[req.ID]
	if !ok || stored.Status != models.RequestPending {
		return store.ErrNotFound
	}
	stored.Status = models.RequestAccepted
	stored.UpdatedAt = time.Now()
	m.requests[req.ID] = stored
	m.friendships[[2]string{req.SenderID, req.ReceiverID}] = true
	m.friendships[[2]string{req.ReceiverID, req.SenderID}] = true
	return nil
}

func (m *memFriends) ListPending(ctx context.Context, receiverID string) ([]models.PendingRequest, error) {
	m.mu.Lock()
	var reqs []models.FriendRequest
	for _, req := range m.requests {
		if req.ReceiverID == receiverID && req.Status == models.RequestPending {
			reqs = append(reqs, req)
		}
	}
	m.mu.Unlock()

	var out []models.PendingRequest
	for _, req := range reqs {
		sender, err := m.users.GetByID(ctx, req.SenderID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.PendingRequest{Request: req, Sender: sender.ToResponse()})
	}
	return out, nil
}

func (m *memFriends) ListFriends(ctx context.Context, userID string) ([]models.User, error) {
	m.mu.Lock()
	var ids []string
	for pair := range m.friendships {
		if pair[0] == userID {
			ids = append(ids, pair[1])
		}
	}
	m.mu.Unlock()

	sort.Strings(ids)
	var out []models.User
	for _, id := range ids {
		u, err := m.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, nil
}

func (m *memFriends) AreFriends(_ context.Context, userA, userB string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.friendships[[2]string{userA, userB}], nil
}

// pendingCount counts pending requests on the unordered pair.
func (m *memFriends) pendingCount(userA, userB string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, req := range m.requests {
		samePair := (req.SenderID == userA && req.ReceiverID == userB) ||
			(req.SenderID == userB && req.ReceiverID == userA)
		if samePair && req.Status == models.RequestPending {
			n++
		}
	}
	return n
}

type memMessages struct {
	mu   sync.Mutex
	msgs []models.Message
}

func newMemMessages() *memMessages {
	return &memMessages{}
}

func (m *memMessages) Insert(_ context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *memMessages) History(_ context.Context, userID, friendID string) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Message
	for _, msg := range m.msgs {
		if (msg.SenderID == userID && msg.ReceiverID == friendID) ||
			(msg.SenderID == friendID && msg.ReceiverID == userID) {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memMessages) MarkRead(_ context.Context, userID, friendID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.msgs {
		if m.msgs[i].ReceiverID == userID && m.msgs[i].SenderID == friendID && !m.msgs[i].Read {
			m.msgs[i].Read = true
			n++
		}
	}
	return n, nil
}

func (m *memMessages) UnreadCounts(_ context.Context, userID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, msg := range m.msgs {
		if msg.ReceiverID == userID && !msg.Read {
			counts[msg.SenderID]++
		}
	}
	return counts, nil
}

type notification struct {
	UserID  string
	Event   string
	Payload any
}

type recordNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (r *recordNotifier) NotifyUser(userID, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, notification{UserID: userID, Event: event, Payload: payload})
}

func (r *recordNotifier) byEvent(event string) []notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification
	for _, n := range r.events {
		if n.Event == event {
			out = append(out, n)
		}
	}
	return out
}

type recordTyping struct {
	mu    sync.Mutex
	stops [][2]string
}

func (r *recordTyping) Stop(_ context.Context, senderID, peerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops = append(r.stops, [2]string{senderID, peerID})
	return nil
}
