package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound - the gateway has no session with the given id.
var ErrSessionNotFound = errors.New("checkout session not found")

// MockGateway is an in-memory Gateway used by the default (mock) wiring
// and by tests. Sessions start unpaid; MarkPaid flips them, standing in
// for the customer completing the hosted page.
type MockGateway struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	// CreateErr / GetErr, when set, are returned by the corresponding
	// call to simulate provider outages.
	CreateErr error
	GetErr    error

	// LastRequest records the most recent CreateSession request so tests
	// can inspect the manifest handed to the provider.
	LastRequest *SessionRequest
}

// NewMockGateway creates an empty mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		sessions: make(map[string]*Session),
	}
}

// Name reports the same tag as the production gateway so order records
// look identical under mock wiring.
func (g *MockGateway) Name() string { return "Stripe" }

func (g *MockGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if g.CreateErr != nil {
		return nil, g.CreateErr
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	reqCopy := req
	g.LastRequest = &reqCopy

	id := "cs_mock_" + uuid.New().String()
	session := &Session{
		ID:   id,
		URL:  fmt.Sprintf("https://checkout.mock.local/pay/%s", id),
		Paid: false,
	}
	g.sessions[id] = session

	copy := *session
	return &copy, nil
}

func (g *MockGateway) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	if g.GetErr != nil {
		return nil, g.GetErr
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	session, ok := g.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copy := *session
	return &copy, nil
}

// MarkPaid flips a session to paid, as if the customer completed the
// hosted checkout page.
func (g *MockGateway) MarkPaid(sessionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	session, ok := g.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	session.Paid = true
	return nil
}
