package assessment

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ot-grc/internal/models"
	"ot-grc/internal/store"
)

// gateStore задерживает первую запись ключа key, пока не закрыт release
type gateStore struct {
	*store.Memory
	key     string
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGateStore(key string) *gateStore {
	return &gateStore{
		Memory:  store.NewMemory(),
		key:     key,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gateStore) Set(ctx context.Context, key string, value []byte) error {
	if key == g.key {
		first := false
		g.once.Do(func() { first = true })
		if first {
			close(g.entered)
			<-g.release
		}
	}
	return g.Memory.Set(ctx, key, value)
}

func TestProgressWritesFollowTransitionOrder(t *testing.T) {
	ctx := context.Background()
	gs := newGateStore(store.KeyProgress)
	e := newTestEngine(t, gs)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		e.Next(ctx)
	}()
	<-gs.entered

	go func() {
		defer wg.Done()
		e.Next(ctx)
	}()
	// второй переход успевает упереться в блокировку
	time.Sleep(50 * time.Millisecond)
	close(gs.release)
	wg.Wait()

	assert.Equal(t, 3, e.State().Stage)

	raw, err := gs.Get(ctx, store.KeyProgress)
	require.NoError(t, err)
	var p models.Progress
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, 3, p.CurrentStage)
}

func TestSavesFollowEditOrder(t *testing.T) {
	ctx := context.Background()
	gs := newGateStore(store.KeyAssessment)
	e := newTestEngine(t, gs)

	e.UpdateMetadata(models.Metadata{Name: "First"})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = e.Save(ctx)
	}()
	<-gs.entered

	e.UpdateMetadata(models.Metadata{Name: "Second"})
	go func() {
		defer wg.Done()
		_ = e.Save(ctx)
	}()
	time.Sleep(50 * time.Millisecond)
	close(gs.release)
	wg.Wait()

	raw, err := gs.Get(ctx, store.KeyAssessment)
	require.NoError(t, err)
	var saved models.Assessment
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, "Second", saved.Metadata.Name)
}
