package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"guildbot/domain/entities"
	"guildbot/domain/events"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memoryAccounts is an in-memory AccountRepository for property style tests
type memoryAccounts struct {
	accounts map[int64]*entities.Account
}

func newMemoryAccounts(seed ...*entities.Account) *memoryAccounts {
	m := &memoryAccounts{accounts: make(map[int64]*entities.Account)}
	for _, a := range seed {
		m.accounts[a.DiscordID] = a
	}
	return m
}

func (m *memoryAccounts) get(id int64) *entities.Account {
	a, ok := m.accounts[id]
	if !ok {
		a = &entities.Account{DiscordID: id}
		m.accounts[id] = a
	}
	return a
}

func (m *memoryAccounts) GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error) {
	a, ok := m.accounts[discordID]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (m *memoryAccounts) GetOrCreate(ctx context.Context, discordID int64) (*entities.Account, error) {
	copied := *m.get(discordID)
	return &copied, nil
}

func (m *memoryAccounts) LockForUpdate(ctx context.Context, discordIDs ...int64) (map[int64]*entities.Account, error) {
	out := make(map[int64]*entities.Account, len(discordIDs))
	for _, id := range discordIDs {
		copied := *m.get(id)
		out[id] = &copied
	}
	return out, nil
}

func (m *memoryAccounts) UpdateBalances(ctx context.Context, discordID int64, wallet, bank int64) error {
	a := m.get(discordID)
	a.Wallet = wallet
	a.Bank = bank
	return nil
}

func (m *memoryAccounts) GetRichest(ctx context.Context, limit int) ([]*entities.Account, error) {
	out := make([]*entities.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total() > out[j].Total() })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memoryStats struct {
	stats map[int64]*entities.EconomyStats
}

func newMemoryStats() *memoryStats {
	return &memoryStats{stats: make(map[int64]*entities.EconomyStats)}
}

func (m *memoryStats) GetOrCreate(ctx context.Context, discordID int64) (*entities.EconomyStats, error) {
	s, ok := m.stats[discordID]
	if !ok {
		s = &entities.EconomyStats{DiscordID: discordID, JobCounts: map[string]int64{}}
		m.stats[discordID] = s
	}
	copied := *s
	copied.JobCounts = make(map[string]int64, len(s.JobCounts))
	for k, v := range s.JobCounts {
		copied.JobCounts[k] = v
	}
	return &copied, nil
}

func (m *memoryStats) IncrementWork(ctx context.Context, discordID int64, job string) error {
	s, _ := m.GetOrCreate(ctx, discordID)
	stored := m.stats[discordID]
	stored.WorkCount = s.WorkCount + 1
	if job != "" {
		stored.JobCounts[job]++
	}
	return nil
}

func (m *memoryStats) IncrementGamble(ctx context.Context, discordID int64, won bool) error {
	m.GetOrCreate(ctx, discordID)
	stored := m.stats[discordID]
	stored.GambleCount++
	if won {
		stored.GambleWins++
	}
	return nil
}

type memoryHistory struct {
	records []*entities.BalanceHistory
}

func (m *memoryHistory) Record(ctx context.Context, history *entities.BalanceHistory) error {
	history.ID = int64(len(m.records) + 1)
	m.records = append(m.records, history)
	return nil
}

func (m *memoryHistory) GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.BalanceHistory, error) {
	return m.records, nil
}

func (m *memoryHistory) GetByDateRange(ctx context.Context, discordID int64, from, to time.Time) ([]*entities.BalanceHistory, error) {
	return m.records, nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) error {
	p.published = append(p.published, event)
	return nil
}
