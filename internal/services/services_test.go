package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/achievement"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/database"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/streak"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock(y int, m time.Month, d int) *clock {
	return &clock{now: time.Date(y, m, d, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, days)
}

type notification struct {
	userID  string
	event   string
	payload interface{}
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(userID, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{userID, event, payload})
}

func (n *recordingNotifier) events() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.sent...)
}

type fixture struct {
	db       *database.DB
	clock    *clock
	notifier *recordingNotifier
	users    *UserService
	streaks  *StreakService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewDB(database.DriverSQLite, filepath.Join(t.TempDir(), "eco.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	catalog, err := achievement.DefaultCatalog(nil)
	require.NoError(t, err)

	f := &fixture{
		db:       db,
		clock:    newClock(2025, time.March, 3),
		notifier: &recordingNotifier{},
		users:    NewUserService(db),
	}
	f.streaks = NewStreakService(db, streak.NewMachine(streak.DefaultConfig()), catalog,
		WithNotifier(f.notifier), WithClock(f.clock.Now))
	return f
}

func (f *fixture) user(t *testing.T, name string) string {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), &models.CreateUserRequest{
		Username: name,
		Email:    name + "@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return u.ID
}

// entryToday records an entry dated on the fixture clock.
func (f *fixture) entryToday(t *testing.T, userID string) *EntryPlan {
	t.Helper()
	plan, err := f.streaks.RecordEntry(context.Background(), userID, f.clock.Now(), nil)
	require.NoError(t, err)
	return plan
}
