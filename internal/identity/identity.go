package identity

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Profile is a logged-in player as seen by the rest of the app.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Provider is the auth boundary. The real thing would talk to an external
// service; Mock stands in for it.
type Provider interface {
	Login(name string) Profile
	Current() (Profile, bool)
}

// Mock issues a profile immediately, inventing a "Cat Butler #NNN" display
// name when the caller does not supply one.
type Mock struct {
	mu      sync.Mutex
	rng     *rand.Rand
	current *Profile
}

func NewMock() *Mock {
	return &Mock{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (m *Mock) Login(name string) Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Cat Butler #%d", m.rng.Intn(1000))
	}
	p := Profile{ID: uuid.NewString(), Name: name}
	m.current = &p
	return p
}

func (m *Mock) Current() (Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Profile{}, false
	}
	return *m.current, true
}

// PaymentGateway is the premium purchase boundary.
type PaymentGateway interface {
	ConfirmPurchase(profileID string) bool
}

// MockGateway approves every purchase, matching the confirm-dialog stub
// the premium flow shipped with.
type MockGateway struct{}

func (MockGateway) ConfirmPurchase(string) bool { return true }
