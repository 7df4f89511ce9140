package session

import (
	"testing"
	"time"

	"lead-engagement-be/internal/repository/memory"
	"lead-engagement-be/pkg/widget"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerLifecycle(t *testing.T) {
	repo := memory.NewSessionRepository(time.Hour)
	var evicted []string
	repo.OnEvicted(func(id string) { evicted = append(evicted, id) })
	m := NewManager(repo)

	var mountedFor string
	s := m.Create(func(id string) *widget.Widget {
		mountedFor = id
		return widget.New(widget.WithRoute("/pricing"))
	})
	require.NotEmpty(t, s.ID)
	assert.Equal(t, s.ID, mountedFor)
	assert.Equal(t, "/pricing", s.Widget.Snapshot().Route)
	assert.Equal(t, 1, m.Count())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.False(t, got.LastSeenAt().Before(got.CreatedAt))

	assert.True(t, m.Delete(s.ID))
	assert.False(t, m.Delete(s.ID))
	_, ok = m.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, []string{s.ID}, evicted)
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	m := NewManager(memory.NewSessionRepository(time.Hour))
	mount := func(string) *widget.Widget { return widget.New(widget.WithDelay(widget.FixedDelay(0))) }

	a := m.Create(mount)
	b := m.Create(mount)
	require.NotEqual(t, a.ID, b.ID)

	a.Widget.Open()
	a.Widget.ChangeRoute("/contact")

	assert.Empty(t, b.Widget.Snapshot().Transcript)
	assert.Equal(t, 0, b.Widget.Profile().Score)
	assert.Equal(t, 20, a.Widget.Profile().Score)
}
