package realtime_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/realtime"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/auth"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

type fakeConn struct {
	mu        sync.Mutex
	frames    []realtime.Frame
	writeErr  error
	pingErr   error
	pings     int
	deadlines int
	closed    bool

	// stall, when set, blocks WriteJSON until it is closed
	stall chan struct{}
}

func (c *fakeConn) SetWriteDeadline(time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadlines++
	return nil
}

func (c *fakeConn) WriteJSON(v any) error {
	if c.stall != nil {
		<-c.stall
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.frames = append(c.frames, v.(realtime.Frame))
	return nil
}

func (c *fakeConn) WriteControl(int, []byte, time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pings++
	return c.pingErr
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) pingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pings
}

func (c *fakeConn) received() []realtime.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]realtime.Frame(nil), c.frames...)
}

func newHub() *realtime.Hub {
	return realtime.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func principal(role user.Role) auth.Principal {
	return auth.Principal{UserID: kernel.NewUUID(), Role: role}
}

func TestHub_Publish_UserChannelReachesEverySessionOfThatUser(t *testing.T) {
	hub := newHub()
	client := principal(user.RoleClient)
	other := principal(user.RoleClient)

	phone, laptop, stranger := &fakeConn{}, &fakeConn{}, &fakeConn{}
	hub.Register(phone, client)
	hub.Register(laptop, client)
	hub.Register(stranger, other)

	err := hub.Publish(t.Context(), ports.UserChannel(client.UserID), "order-status-update", map[string]string{"status": "ASSIGNED"})

	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return len(phone.received()) == 1 && len(laptop.received()) == 1
	}, waitFor, 5*time.Millisecond)
	assert.Empty(t, stranger.received())
	assert.Equal(t, "order-status-update", phone.received()[0].Event)
}

func TestHub_Publish_AdminChannelOnlyReachesAdmins(t *testing.T) {
	hub := newHub()
	admin, courier := &fakeConn{}, &fakeConn{}
	hub.Register(admin, principal(user.RoleAdmin))
	hub.Register(courier, principal(user.RoleCourier))

	require.NoError(t, hub.Publish(t.Context(), ports.AdminChannel(), "new-order", nil))

	require.Eventually(t, func() bool { return len(admin.received()) == 1 }, waitFor, 5*time.Millisecond)
	assert.Empty(t, courier.received())
}

func TestHub_Publish_AdminAlsoReceivesOwnUserChannel(t *testing.T) {
	hub := newHub()
	p := principal(user.RoleAdmin)
	conn := &fakeConn{}
	hub.Register(conn, p)

	require.NoError(t, hub.Publish(t.Context(), ports.UserChannel(p.UserID), "order-assigned", nil))

	require.Eventually(t, func() bool { return len(conn.received()) == 1 }, waitFor, 5*time.Millisecond)
}

func TestHub_Publish_OfflineUserIsNotAnError(t *testing.T) {
	hub := newHub()

	err := hub.Publish(t.Context(), ports.UserChannel(kernel.NewUUID()), "order-assigned", nil)

	assert.NoError(t, err)
}

func TestHub_Publish_FailedWriteEvictsSession(t *testing.T) {
	hub := newHub()
	p := principal(user.RoleCourier)
	broken := &fakeConn{writeErr: errors.New("broken pipe")}
	healthy := &fakeConn{}
	hub.Register(broken, p)
	hub.Register(healthy, p)

	require.NoError(t, hub.Publish(t.Context(), ports.UserChannel(p.UserID), "order-assigned", nil))

	require.Eventually(t, broken.isClosed, waitFor, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(healthy.received()) == 1 }, waitFor, 5*time.Millisecond)
	assert.Equal(t, 1, hub.Connections())
}

func TestHub_Publish_EveryWriteHasADeadline(t *testing.T) {
	hub := newHub()
	p := principal(user.RoleClient)
	conn := &fakeConn{}
	hub.Register(conn, p)

	for range 3 {
		require.NoError(t, hub.Publish(t.Context(), ports.UserChannel(p.UserID), "order-status-update", nil))
	}

	require.Eventually(t, func() bool { return len(conn.received()) == 3 }, waitFor, 5*time.Millisecond)
	conn.mu.Lock()
	defer conn.mu.Unlock()
	assert.Equal(t, 3, conn.deadlines)
}

func TestHub_Publish_StalledPeerDoesNotBlockPublisher(t *testing.T) {
	hub := newHub()
	p := principal(user.RoleAdmin)
	stalled := &fakeConn{stall: make(chan struct{})}
	defer close(stalled.stall)
	hub.Register(stalled, p)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 200 {
			_ = hub.Publish(t.Context(), ports.AdminChannel(), "new-order", map[string]string{"orderId": "42"})
		}
	}()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Publish blocked on a session that stopped reading")
	}
	assert.True(t, stalled.isClosed())
	assert.Equal(t, 0, hub.Connections())
}

func TestHub_Sweep_NotHeldUpByAStalledWrite(t *testing.T) {
	hub := newHub()
	p := principal(user.RoleClient)
	stalled := &fakeConn{stall: make(chan struct{})}
	defer close(stalled.stall)
	hub.Register(stalled, p)
	require.NoError(t, hub.Publish(t.Context(), ports.UserChannel(p.UserID), "order-assigned", nil))

	done := make(chan int)
	go func() { done <- hub.Sweep() }()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Sweep waited for a blocked write")
	}
	assert.Equal(t, 1, stalled.pingCount())
}

func TestHub_Unregister_IsIdempotent(t *testing.T) {
	hub := newHub()
	p := principal(user.RoleAdmin)
	conn := &fakeConn{}

	unregister := hub.Register(conn, p)
	require.Equal(t, 1, hub.Connections())

	unregister()
	unregister()

	assert.Equal(t, 0, hub.Connections())
	require.NoError(t, hub.Publish(t.Context(), ports.AdminChannel(), "new-order", nil))
	assert.Never(t, func() bool { return len(conn.received()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestHub_Sweep_EvictsSessionsThatFailPing(t *testing.T) {
	hub := newHub()
	dead := &fakeConn{pingErr: errors.New("timeout")}
	alive := &fakeConn{}
	hub.Register(dead, principal(user.RoleClient))
	hub.Register(alive, principal(user.RoleClient))

	evicted := hub.Sweep()

	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, hub.Connections())
	assert.True(t, dead.isClosed())
	assert.False(t, alive.isClosed())
	assert.Equal(t, 1, alive.pingCount())
}

func TestHub_FrameEncoding(t *testing.T) {
	body, err := json.Marshal(realtime.Frame{Event: "new-order", Payload: map[string]string{"orderId": "42"}})

	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"new-order","payload":{"orderId":"42"}}`, string(body))
}

func TestHub_ZeroValueRejectsPublish(t *testing.T) {
	var hub realtime.Hub

	err := hub.Publish(t.Context(), ports.AdminChannel(), "new-order", nil)

	assert.ErrorIs(t, err, realtime.ErrHubIsNotConstructed)
}

func TestHub_Publish_PeerThatStopsReadingOverRealSocket(t *testing.T) {
	hub := newHub()
	p := principal(user.RoleClient)
	registered := make(chan struct{})
	release := make(chan struct{})

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		unregister := hub.Register(conn, p)
		defer unregister()
		close(registered)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	dialer := websocket.Dialer{ReadBufferSize: 4096}
	client, resp, err := dialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	<-registered

	big := strings.Repeat("x", 256<<10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 200 {
			_ = hub.Publish(t.Context(), ports.UserChannel(p.UserID), "order-assigned", map[string]string{"description": big})
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Publish blocked on a peer that stopped reading")
	}
	assert.Equal(t, 0, hub.Connections())
}
