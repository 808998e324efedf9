package client

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/you/noticehub/domain"
)

// TokenSource exposes the current session token. LoginManager satisfies it.
type TokenSource interface {
	Token() string
}

const keyNotifications = "notifications"

const (
	defaultPollInterval = 30 * time.Second
	defaultCooldown     = 5 * time.Minute
)

// cachedFeed is the persisted shape of the cache
type cachedFeed struct {
	Notifications []domain.NotificationView `json:"notifications"`
	UnreadCount   int                       `json:"unreadCount"`
	IsLoggedIn    bool                      `json:"isLoggedIn"`
}

// NotificationCache mirrors the server's notification feed on the
// client. Reads are served from memory; a background loop refreshes the
// mirror and a failed refresh backs off before retrying.
type NotificationCache struct {
	api    NotificationAPI
	tokens TokenSource
	store  Store
	logger *zap.Logger

	pollInterval time.Duration
	cooldown     time.Duration

	mu           sync.Mutex
	feed         cachedFeed
	cooldownTill time.Time
	started      bool

	stopOnce sync.Once
	stopCh   chan struct{}
	loopWG   sync.WaitGroup
	pending  sync.WaitGroup

	Updated *Emitter[domain.NotificationFeed]
}

// NewNotificationCache restores any persisted feed from the store
func NewNotificationCache(api NotificationAPI, tokens TokenSource, store Store, logger *zap.Logger) *NotificationCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &NotificationCache{
		api:          api,
		tokens:       tokens,
		store:        store,
		logger:       logger,
		pollInterval: defaultPollInterval,
		cooldown:     defaultCooldown,
		stopCh:       make(chan struct{}),
		Updated:      NewEmitter[domain.NotificationFeed](logger),
	}
	store.Get(keyNotifications, &c.feed)
	return c
}

// Feed returns the current cached feed
func (c *NotificationCache) Feed() domain.NotificationFeed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Start launches the background refresh loop. A session token must
// exist; starting an already-started cache is a no-op. An immediate
// fetch runs before the first tick.
func (c *NotificationCache) Start(ctx context.Context) error {
	if c.tokens.Token() == "" {
		return domain.ErrNotLoggedIn
	}

	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	c.mu.Unlock()

	c.loopWG.Add(1)
	go func() {
		defer c.loopWG.Done()
		c.Fetch(ctx)
		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stopCh:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Fetch(ctx)
			}
		}
	}()
	return nil
}

// Stop halts the refresh loop and waits for in-flight mark operations
func (c *NotificationCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
	c.loopWG.Wait()
	c.pending.Wait()
}

// WaitPending blocks until all in-flight mark-read calls have settled
func (c *NotificationCache) WaitPending() {
	c.pending.Wait()
}

// Fetch refreshes the mirror from the server. The newest successful
// response wins outright; on failure the current feed is kept and a
// cool-down suppresses further polls.
func (c *NotificationCache) Fetch(ctx context.Context) error {
	c.mu.Lock()
	if time.Now().Before(c.cooldownTill) {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	feed, err := c.api.Fetch(ctx, c.tokens.Token())
	if err != nil {
		c.logger.Warn("notification fetch failed", zap.Error(err))
		c.mu.Lock()
		c.cooldownTill = time.Now().Add(c.cooldown)
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.cooldownTill = time.Time{}
	c.feed = cachedFeed{
		Notifications: feed.Notifications,
		UnreadCount:   feed.UnreadCount,
		IsLoggedIn:    feed.IsLoggedIn,
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.store.Set(keyNotifications, c.persistView())
	c.Updated.Emit(snap)
	return nil
}

// MarkRead flips the notification locally first so the UI reacts
// immediately, then confirms with the server. A server rejection rolls
// the flip back; a transport failure leaves it, the next fetch settles it.
func (c *NotificationCache) MarkRead(ctx context.Context, id string) {
	c.mu.Lock()
	flipped := false
	for i := range c.feed.Notifications {
		if c.feed.Notifications[i].ID == id && !c.feed.Notifications[i].IsRead {
			c.feed.Notifications[i].IsRead = true
			if c.feed.UnreadCount > 0 {
				c.feed.UnreadCount--
			}
			flipped = true
			break
		}
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if flipped {
		c.store.Set(keyNotifications, c.persistView())
		c.Updated.Emit(snap)
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		err := c.api.MarkRead(ctx, c.tokens.Token(), id)
		if err == nil {
			return
		}
		if _, ok := err.(*APIError); !ok {
			c.logger.Debug("mark read not confirmed", zap.String("id", id), zap.Error(err))
			return
		}
		if !flipped {
			return
		}
		c.mu.Lock()
		for i := range c.feed.Notifications {
			if c.feed.Notifications[i].ID == id && c.feed.Notifications[i].IsRead {
				c.feed.Notifications[i].IsRead = false
				c.feed.UnreadCount++
				break
			}
		}
		rolled := c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Warn("mark read rejected, rolled back", zap.String("id", id), zap.Error(err))
		c.store.Set(keyNotifications, c.persistView())
		c.Updated.Emit(rolled)
	}()
}

// MarkAllRead asks the server to mark every visible notification of the
// given type (all types when empty) and refreshes the mirror afterwards
func (c *NotificationCache) MarkAllRead(ctx context.Context, typeFilter domain.NotificationType) (bool, error) {
	updated, err := c.api.MarkAllRead(ctx, c.tokens.Token(), typeFilter)
	if err != nil {
		return false, err
	}
	if err := c.Fetch(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

func (c *NotificationCache) snapshotLocked() domain.NotificationFeed {
	list := make([]domain.NotificationView, len(c.feed.Notifications))
	copy(list, c.feed.Notifications)
	return domain.NotificationFeed{
		Notifications: list,
		UnreadCount:   c.feed.UnreadCount,
		IsLoggedIn:    c.feed.IsLoggedIn,
	}
}

func (c *NotificationCache) persistView() cachedFeed {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := make([]domain.NotificationView, len(c.feed.Notifications))
	copy(list, c.feed.Notifications)
	return cachedFeed{
		Notifications: list,
		UnreadCount:   c.feed.UnreadCount,
		IsLoggedIn:    c.feed.IsLoggedIn,
	}
}
