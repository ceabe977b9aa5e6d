package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_UsesProvidedName(t *testing.T) {
	m := NewMock()
	p := m.Login("  Whiskers ")
	assert.Equal(t, "Whiskers", p.Name)
	assert.NotEmpty(t, p.ID)

	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, p, cur)
}

func TestLogin_InventsNameWhenEmpty(t *testing.T) {
	m := NewMock()
	p := m.Login("")
	assert.True(t, strings.HasPrefix(p.Name, "Cat Butler #"), p.Name)
}

func TestLogin_NewSessionGetsNewID(t *testing.T) {
	m := NewMock()
	a := m.Login("Mittens")
	b := m.Login("Mittens")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCurrent_NobodyLoggedIn(t *testing.T) {
	m := NewMock()
	_, ok := m.Current()
	assert.False(t, ok)
}

func TestMockGateway_AlwaysConfirms(t *testing.T) {
	assert.True(t, MockGateway{}.ConfirmPurchase("any"))
}
