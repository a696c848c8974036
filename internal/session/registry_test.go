package session_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"mypad/internal/domain"
	"mypad/internal/metrics"
	"mypad/internal/session"
)

// fakePeer records every frame it is handed.
type fakePeer struct {
	id      domain.ConnID
	sendErr error

	mu     sync.Mutex
	state  domain.ConnState
	frames []string
	closes int
}

func newPeer(id string) *fakePeer {
	return &fakePeer{id: domain.ConnID(id), state: domain.Open}
}

func (p *fakePeer) ID() domain.ConnID { return p.id }

func (p *fakePeer) State() domain.ConnState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *fakePeer) Send(text []byte) error {
	if p.sendErr != nil {
		return p.sendErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, string(text))
	return nil
}

func (p *fakePeer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closes++
	p.state = domain.Closed
	return nil
}

func (p *fakePeer) received() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.frames...)
}

func newRegistry(opts ...session.Option) *session.Registry {
	return session.New(append([]session.Option{session.WithLogger(zerolog.Nop())}, opts...)...)
}

func TestBroadcast_PingFromSecondOfThree(t *testing.T) {
	r := newRegistry()
	c1, c2, c3 := newPeer("1"), newPeer("2"), newPeer("3")
	r.Register(c1)
	r.Register(c2)
	r.Register(c3)

	if n := r.Broadcast([]byte("ping"), c2); n != 2 {
		t.Fatalf("delivered to %d peers, want 2", n)
	}

	for _, p := range []*fakePeer{c1, c3} {
		got := p.received()
		if len(got) != 1 || got[0] != "ping" {
			t.Fatalf("peer %s received %v, want [ping]", p.id, got)
		}
	}
	if got := c2.received(); len(got) != 0 {
		t.Fatalf("sender received its own frame: %v", got)
	}
}

func TestBroadcast_NilSenderReachesAll(t *testing.T) {
	r := newRegistry()
	a, b := newPeer("a"), newPeer("b")
	r.Register(a)
	r.Register(b)
	if n := r.Broadcast([]byte("hi"), nil); n != 2 {
		t.Fatalf("delivered %d, want 2", n)
	}
}

func TestBroadcast_UnregisteredSenderStillExcluded(t *testing.T) {
	r := newRegistry()
	a, b := newPeer("a"), newPeer("b")
	r.Register(b)
	r.Broadcast([]byte("x"), a)
	if got := b.received(); len(got) != 1 {
		t.Fatalf("b received %v", got)
	}
	if got := a.received(); len(got) != 0 {
		t.Fatalf("a received %v", got)
	}
}

func TestRegister_Twice_KeepsOneEntry(t *testing.T) {
	r := newRegistry()
	a := newPeer("a")
	r.Register(a)
	r.Register(a)
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	r.Broadcast([]byte("x"), nil)
	if got := a.received(); len(got) != 1 {
		t.Fatalf("duplicate delivery: %v", got)
	}
}

func TestUnregister_Idempotent(t *testing.T) {
	r := newRegistry()
	a, b := newPeer("a"), newPeer("b")
	r.Register(a)
	r.Register(b)

	r.Unregister(a)
	once := r.Len()
	r.Unregister(a)
	if r.Len() != once || once != 1 {
		t.Fatalf("Len after double unregister = %d, want %d", r.Len(), once)
	}
	if a.closes != 1 {
		t.Fatalf("peer closed %d times, want 1", a.closes)
	}

	r.Unregister(newPeer("never-registered"))
	r.Unregister(nil)
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
}

func TestBroadcast_FailingPeerDroppedOthersServed(t *testing.T) {
	m := metrics.New()
	r := newRegistry(session.WithMetrics(m))

	good1, bad, good2 := newPeer("g1"), newPeer("bad"), newPeer("g2")
	bad.sendErr = errors.New("peer gone")
	sender := newPeer("s")
	for _, p := range []*fakePeer{good1, bad, good2, sender} {
		r.Register(p)
	}

	if n := r.Broadcast([]byte("m"), sender); n != 2 {
		t.Fatalf("delivered %d, want 2", n)
	}
	if len(good1.received()) != 1 || len(good2.received()) != 1 {
		t.Fatal("healthy peers missed the frame")
	}
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3 after dropping failing peer", r.Len())
	}
	if bad.closes != 1 {
		t.Fatalf("failing peer closed %d times, want 1", bad.closes)
	}
	if got := testutil.ToFloat64(m.DroppedPeers); got != 1 {
		t.Fatalf("dropped metric = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Connections); got != 3 {
		t.Fatalf("connections metric = %v, want 3", got)
	}
}

func TestBroadcast_ClosedPeerSkippedAndRemoved(t *testing.T) {
	r := newRegistry()
	a, b := newPeer("a"), newPeer("b")
	r.Register(a)
	r.Register(b)
	b.mu.Lock()
	b.state = domain.Closed
	b.mu.Unlock()

	if n := r.Broadcast([]byte("x"), a); n != 0 {
		t.Fatalf("delivered %d, want 0", n)
	}
	if len(b.received()) != 0 {
		t.Fatal("closed peer received a frame")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
}

func TestBroadcast_ConnectingPeerSkippedNotDropped(t *testing.T) {
	r := newRegistry()
	a, b := newPeer("a"), newPeer("b")
	b.state = domain.Connecting
	r.Register(a)
	r.Register(b)

	r.Broadcast([]byte("x"), a)
	if len(b.received()) != 0 {
		t.Fatal("connecting peer received a frame")
	}
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
}

func TestClose_UnregistersAll(t *testing.T) {
	r := newRegistry()
	peers := []*fakePeer{newPeer("a"), newPeer("b"), newPeer("c")}
	for _, p := range peers {
		r.Register(p)
	}
	r.Close()
	if r.Len() != 0 {
		t.Fatalf("Len = %d after Close", r.Len())
	}
	for _, p := range peers {
		if p.closes != 1 {
			t.Fatalf("peer %s closed %d times", p.id, p.closes)
		}
	}
}

func TestRegistry_ConcurrentChurn(t *testing.T) {
	r := newRegistry()
	stable := newPeer("stable")
	r.Register(stable)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := newPeer(fmt.Sprintf("p%d", i))
			for j := 0; j < 50; j++ {
				r.Register(p)
				r.Broadcast([]byte("x"), p)
				r.Unregister(p)
				r.Unregister(p)
			}
		}(i)
	}
	wg.Wait()

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	if got := len(stable.received()); got != 16*50 {
		t.Fatalf("stable peer received %d frames, want %d", got, 16*50)
	}
}

// vanishingPeer is removed by another path while its send is failing, the way
// a read pump unregisters a connection that a broadcast is also dropping.
type vanishingPeer struct {
	*fakePeer
	reg *session.Registry
}

func (p vanishingPeer) Send([]byte) error {
	p.reg.Unregister(p)
	return errors.New("connection reset")
}

func TestBroadcast_AlreadyRemovedPeerNotCountedAsDropped(t *testing.T) {
	m := metrics.New()
	r := newRegistry(session.WithMetrics(m))
	sender := newPeer("s")
	gone := vanishingPeer{fakePeer: newPeer("gone"), reg: r}
	r.Register(sender)
	r.Register(gone)

	if n := r.Broadcast([]byte("x"), sender); n != 0 {
		t.Fatalf("delivered %d, want 0", n)
	}
	if got := testutil.ToFloat64(m.DroppedPeers); got != 0 {
		t.Fatalf("dropped metric = %v, want 0", got)
	}
	if gone.closes != 1 {
		t.Fatalf("peer closed %d times, want 1", gone.closes)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
}

// valuePeer is a non-comparable value type.
type valuePeer struct {
	id     domain.ConnID
	tags   []string
	closed *int
}

func (p valuePeer) ID() domain.ConnID { return p.id }
func (p valuePeer) State() domain.ConnState { return domain.Open }
func (p valuePeer) Send([]byte) error { return nil }

func (p valuePeer) Close() error {
	*p.closed++
	return nil
}

func TestUnregister_ValueTypePeer(t *testing.T) {
	r := newRegistry()
	closed := 0
	p := valuePeer{id: "v", tags: []string{"a"}, closed: &closed}
	r.Register(p)
	r.Register(p)

	r.Unregister(p)
	r.Unregister(p)
	if r.Len() != 0 {
		t.Fatalf("Len = %d, want 0", r.Len())
	}
	if closed != 1 {
		t.Fatalf("peer closed %d times, want 1", closed)
	}
}
