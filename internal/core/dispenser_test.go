package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDispenser(repo PoolRepository) *Dispenser {
	return NewDispenser(repo, zap.NewNop(), nil)
}

func TestDispense_NoRepeatWithinCycle(t *testing.T) {
	repo := newMemoryRepo()
	repo.pools[LocaleEN] = makePool("a", "b", "c", "d", "e")
	d := newTestDispenser(repo)

	seen := make(map[string]struct{})
	for i := 0; i < 5; i++ {
		s := d.Dispense(context.Background(), LocaleEN)
		_, dup := seen[s.ID]
		require.False(t, dup, "sample %s served twice in one cycle", s.ID)
		seen[s.ID] = struct{}{}
	}
	assert.Len(t, seen, 5)

	stats := d.Stats(LocaleEN)
	assert.Equal(t, 5, stats.Consumed)
	assert.Equal(t, 5, stats.Size)
}

func TestDispense_StartsNewCycleWhenExhausted(t *testing.T) {
	repo := newMemoryRepo()
	repo.pools[LocaleEN] = makePool("a", "b", "c")
	d := newTestDispenser(repo)

	for i := 0; i < 3; i++ {
		d.Dispense(context.Background(), LocaleEN)
	}
	s := d.Dispense(context.Background(), LocaleEN)

	assert.Contains(t, []string{"a", "b", "c"}, s.ID)
	assert.Equal(t, 1, d.Stats(LocaleEN).Consumed)
}

func TestDispense_SingleSamplePool(t *testing.T) {
	repo := newMemoryRepo()
	repo.pools[LocaleEN] = makePool("only")
	d := newTestDispenser(repo)

	for i := 0; i < 3; i++ {
		assert.Equal(t, "only", d.Dispense(context.Background(), LocaleEN).ID)
	}
}

func TestDispense_LocalesAreIndependent(t *testing.T) {
	repo := newMemoryRepo()
	repo.pools[LocaleEN] = makePool("en_1", "en_2")
	repo.pools[LocaleZH] = makePool("zh_1", "zh_2", "zh_3")
	d := newTestDispenser(repo)

	d.Dispense(context.Background(), LocaleEN)
	d.Dispense(context.Background(), LocaleEN)
	zh := d.Dispense(context.Background(), LocaleZH)

	assert.Contains(t, []string{"zh_1", "zh_2", "zh_3"}, zh.ID)
	assert.Equal(t, 2, d.Stats(LocaleEN).Consumed)
	assert.Equal(t, 1, d.Stats(LocaleZH).Consumed)
}

func TestDispense_OverwritesDisplayTime(t *testing.T) {
	repo := newMemoryRepo()
	repo.pools[LocaleEN] = makePool("a")
	repo.pools[LocaleZH] = makePool("z")
	d := newTestDispenser(repo)

	enTimes := make(map[string]bool)
	zhTimes := make(map[string]bool)
	for _, m := range displaySlots {
		enTimes[DisplayTime(LocaleEN, m)] = true
		zhTimes[DisplayTime(LocaleZH, m)] = true
	}

	for i := 0; i < 10; i++ {
		en := d.Dispense(context.Background(), LocaleEN)
		zh := d.Dispense(context.Background(), LocaleZH)
		assert.True(t, enTimes[en.Time], "unexpected time %q", en.Time)
		assert.True(t, zhTimes[zh.Time], "unexpected time %q", zh.Time)
	}

	stored, err := repo.Load(context.Background(), LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, "stored", stored[0].Time)
}

func TestDispense_EmptyPoolReturnsPlaceholder(t *testing.T) {
	repo := newMemoryRepo()
	d := newTestDispenser(repo)

	s := d.Dispense(context.Background(), LocaleEN)
	assert.Equal(t, UnavailableSample(LocaleEN), s)
	assert.False(t, s.IsPhishing)
	assert.Empty(t, s.Clues)

	// a later batch run is picked up without a restart
	repo.pools[LocaleEN] = makePool("new")
	assert.Equal(t, "new", d.Dispense(context.Background(), LocaleEN).ID)
}

func TestDispense_LoadErrorReturnsPlaceholder(t *testing.T) {
	repo := newMemoryRepo()
	repo.loadErr = errors.New("unreadable")
	d := newTestDispenser(repo)

	assert.Equal(t, UnavailableSample(LocaleZH), d.Dispense(context.Background(), LocaleZH))
	assert.False(t, d.Stats(LocaleZH).Loaded)
}

func TestDispense_LoadsPoolOnce(t *testing.T) {
	repo := newMemoryRepo()
	repo.pools[LocaleEN] = makePool("a", "b")
	d := newTestDispenser(repo)

	for i := 0; i < 6; i++ {
		d.Dispense(context.Background(), LocaleEN)
	}
	assert.Equal(t, 1, repo.loads)
}

func TestReset_ClearsStateAndReloads(t *testing.T) {
	repo := newMemoryRepo()
	repo.pools[LocaleEN] = makePool("a", "b", "c")
	d := newTestDispenser(repo)

	d.Dispense(context.Background(), LocaleEN)
	d.Dispense(context.Background(), LocaleEN)
	d.Reset(LocaleEN)

	stats := d.Stats(LocaleEN)
	assert.False(t, stats.Loaded)
	assert.Equal(t, 0, stats.Consumed)

	repo.pools[LocaleEN] = makePool("a", "b", "c", "d")
	seen := make(map[string]struct{})
	for i := 0; i < 4; i++ {
		seen[d.Dispense(context.Background(), LocaleEN).ID] = struct{}{}
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, 2, repo.loads)
}

func TestDispenseN(t *testing.T) {
	repo := newMemoryRepo()
	repo.pools[LocaleEN] = makePool("a", "b", "c", "d")
	d := newTestDispenser(repo)

	batch := d.DispenseN(context.Background(), LocaleEN, 4)
	require.Len(t, batch, 4)

	ids := make(map[string]struct{})
	for _, s := range batch {
		ids[s.ID] = struct{}{}
	}
	assert.Len(t, ids, 4)

	more := d.DispenseN(context.Background(), LocaleEN, 6)
	assert.Len(t, more, 6)
}

func TestDispenseN_EmptyPool(t *testing.T) {
	d := newTestDispenser(newMemoryRepo())

	batch := d.DispenseN(context.Background(), LocaleZH, 10)
	require.Len(t, batch, 1)
	assert.Equal(t, UnavailableSample(LocaleZH), batch[0])
}

func TestDispense_ConcurrentCallersNeverCollide(t *testing.T) {
	const size = 64
	ids := make([]string, size)
	for i := range ids {
		ids[i] = fmt.Sprintf("s%02d", i)
	}
	repo := newMemoryRepo()
	repo.pools[LocaleEN] = makePool(ids...)
	d := newTestDispenser(repo)

	var mu sync.Mutex
	seen := make(map[string]int)
	var wg sync.WaitGroup
	for i := 0; i < size; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := d.Dispense(context.Background(), LocaleEN)
			mu.Lock()
			seen[s.ID]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, size)
	for id, n := range seen {
		assert.Equal(t, 1, n, "sample %s", id)
	}
}

func TestDisplayTime(t *testing.T) {
	tests := []struct {
		locale  Locale
		minutes int
		want    string
	}{
		{LocaleEN, 8*60 + 15, "08:15 AM"},
		{LocaleEN, 13*60 + 42, "01:42 PM"},
		{LocaleZH, 9*60 + 3, "上午 09:03"},
		{LocaleZH, 17*60 + 11, "下午 17:11"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayTime(tt.locale, tt.minutes))
	}
}
