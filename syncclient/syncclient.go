// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncclient

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/residencyhq/intake/models"
)

// Default debounce windows. Local writes are cheap and keep refresh
// safety tight; remote writes ride a longer window to avoid a PATCH
// per keystroke.
const (
	DefaultLocalDelay  = 300 * time.Millisecond
	DefaultRemoteDelay = 2 * time.Second
)

// Remote is the server side of the sync strategy.
type Remote interface {
	FetchApplication(ctx context.Context) (models.Application, error)
	SaveAnswers(ctx context.Context, answers map[string]string, section string) error
}

// cacheData is the local cache snapshot. Timestamp is milliseconds
// since epoch, compared against the remote record's updated_at on
// load.
type cacheData struct {
	Answers        map[string]string `json:"answers"`
	CurrentSection string            `json:"current_section"`
	Timestamp      int64             `json:"timestamp"`
}

// Client keeps an in-memory answer map and reconciles it with two
// write targets: a fast local cache file and the slower remote store.
// Edits apply synchronously in memory, then two independent
// trailing-edge debounce timers flush the full snapshot — each new
// edit resets both, so only the last edit of a burst is persisted.
//
// All methods are safe for concurrent use.
type Client struct {
	remote      Remote
	cachePath   string
	localDelay  time.Duration
	remoteDelay time.Duration

	mu          sync.Mutex
	answers     map[string]string
	section     string
	localTimer  *time.Timer
	remoteTimer *time.Timer
}

func New(remote Remote, cachePath string) *Client {
	return &Client{
		remote:      remote,
		cachePath:   cachePath,
		localDelay:  DefaultLocalDelay,
		remoteDelay: DefaultRemoteDelay,
		answers:     map[string]string{},
	}
}

// NewWithDelays is New with explicit debounce windows (tests).
func NewWithDelays(remote Remote, cachePath string, localDelay, remoteDelay time.Duration) *Client {
	c := New(remote, cachePath)
	c.localDelay = localDelay
	c.remoteDelay = remoteDelay
	return c
}

// Load fetches the remote application and reads the local cache,
// keeping whichever snapshot is newer: the cache wins only when its
// timestamp is later than the remote record's updated_at (an offline
// edit or a silently failed remote write). When the remote is
// unreachable the cache alone is used.
func (c *Client) Load(ctx context.Context) (map[string]string, string, error) {
	cached, cacheErr := c.readCache()

	app, remoteErr := c.remote.FetchApplication(ctx)
	if remoteErr != nil {
		if cacheErr != nil {
			return nil, "", errors.Join(remoteErr, cacheErr)
		}
		slog.Warn("remote load failed, using local cache", "error", remoteErr)
		c.adopt(cached.Answers, cached.CurrentSection)
		return c.Answers(), cached.CurrentSection, nil
	}

	if cacheErr == nil && cached.Timestamp > app.UpdatedAt.UnixMilli() {
		c.adopt(cached.Answers, cached.CurrentSection)
		return c.Answers(), cached.CurrentSection, nil
	}

	section := ""
	if app.CurrentSection != nil {
		section = *app.CurrentSection
	}
	c.adopt(app.Answers, section)
	return c.Answers(), section, nil
}

// UpdateAnswer merges one change into the in-memory map immediately
// and schedules both debounced flushes.
func (c *Client) UpdateAnswer(questionID, value, section string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.answers[questionID] = value
	c.section = section

	if c.localTimer != nil {
		c.localTimer.Stop()
	}
	c.localTimer = time.AfterFunc(c.localDelay, c.flushLocal)

	if c.remoteTimer != nil {
		c.remoteTimer.Stop()
	}
	c.remoteTimer = time.AfterFunc(c.remoteDelay, c.flushRemote)
}

// SaveNow cancels pending timers and performs both writes
// synchronously. Called on tab-hide, navigation, and before freeze or
// submit so no edit is lost at a transition point.
func (c *Client) SaveNow(ctx context.Context, section string) error {
	c.mu.Lock()
	c.section = section
	if c.localTimer != nil {
		c.localTimer.Stop()
		c.localTimer = nil
	}
	if c.remoteTimer != nil {
		c.remoteTimer.Stop()
		c.remoteTimer = nil
	}
	answers := snapshot(c.answers)
	c.mu.Unlock()

	if err := c.writeCache(answers, section); err != nil {
		slog.Warn("local cache write failed", "error", err)
	}
	return c.remote.SaveAnswers(ctx, answers, section)
}

// Answers returns a copy of the current in-memory answer map.
func (c *Client) Answers() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot(c.answers)
}

func (c *Client) adopt(answers map[string]string, section string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers = snapshot(answers)
	c.section = section
}

func (c *Client) flushLocal() {
	c.mu.Lock()
	answers := snapshot(c.answers)
	section := c.section
	c.mu.Unlock()

	if err := c.writeCache(answers, section); err != nil {
		slog.Warn("local cache write failed", "error", err)
	}
}

func (c *Client) flushRemote() {
	c.mu.Lock()
	answers := snapshot(c.answers)
	section := c.section
	c.mu.Unlock()

	// Silent fail: the local cache still has the data and the next
	// edit retries. The caller's save indicator, not an error dialog,
	// reports persistence state.
	if err := c.remote.SaveAnswers(context.Background(), answers, section); err != nil {
		slog.Warn("remote save failed", "error", err)
	}
}

func (c *Client) writeCache(answers map[string]string, section string) error {
	raw, err := json.Marshal(cacheData{
		Answers:        answers,
		CurrentSection: section,
		Timestamp:      time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(c.cachePath, raw, 0o600)
}

func (c *Client) readCache() (cacheData, error) {
	raw, err := os.ReadFile(c.cachePath)
	if err != nil {
		return cacheData{}, err
	}
	var data cacheData
	if err := json.Unmarshal(raw, &data); err != nil {
		return cacheData{}, err
	}
	if data.Answers == nil {
		data.Answers = map[string]string{}
	}
	return data, nil
}

func snapshot(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
