package session

import (
	"sync"
	"time"

	"github.com/jrsteele09/quickserve-session/api"
	"github.com/jrsteele09/quickserve-session/internal/config"
	"github.com/jrsteele09/quickserve-session/internal/errors"
	"github.com/jrsteele09/quickserve-session/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultLogoutTimeout = 5 * time.Second
	defaultRefreshLeeway = 30 * time.Second
)

var _ api.Refresher = (*Store)(nil)

// Store owns the Session. It is the only writer: state changes only through
// its actions, each of which persists the durable subset and then notifies
// subscribers.
type Store struct {
	mu    sync.Mutex
	state Session

	authAPI api.AuthAPI
	kv      storage.KeyValue
	key     string

	logger        zerolog.Logger
	nowTime       func() time.Time
	logoutTimeout time.Duration
	refreshLeeway time.Duration

	listenersMu  sync.Mutex
	listeners    map[int]func(Session)
	nextListener int

	pending sync.WaitGroup // in-flight logout notifications
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithStorageKey overrides the key the session is persisted under.
func WithStorageKey(key string) StoreOption {
	return func(s *Store) {
		s.key = key
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// WithLogoutTimeout bounds the best-effort logout notification. Zero or
// less keeps the default.
func WithLogoutTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.logoutTimeout = d
		}
	}
}

// WithRefreshLeeway sets how close to expiry the token source lets an access
// token get before refreshing it.
func WithRefreshLeeway(d time.Duration) StoreOption {
	return func(s *Store) {
		s.refreshLeeway = d
	}
}

// WithConfig applies the client and storage settings from cfg.
func WithConfig(cfg config.Config) StoreOption {
	return func(s *Store) {
		s.key = cfg.GetStorageKey()
		WithLogoutTimeout(cfg.GetLogoutTimeout())(s)
		s.refreshLeeway = cfg.GetRefreshLeeway()
	}
}

// New creates a Store and hydrates it from kv. A missing or unreadable
// persisted session yields an empty one.
func New(authAPI api.AuthAPI, kv storage.KeyValue, options ...StoreOption) (*Store, error) {
	if authAPI == nil {
		return nil, errors.New("[session.New] authAPI is required")
	}
	if kv == nil {
		return nil, errors.New("[session.New] storage is required")
	}

	s := &Store{
		authAPI:       authAPI,
		kv:            kv,
		key:           config.DefaultStorageKey,
		logger:        log.Logger,
		nowTime:       time.Now,
		logoutTimeout: defaultLogoutTimeout,
		refreshLeeway: defaultRefreshLeeway,
		listeners:     make(map[int]func(Session)),
	}
	for _, opt := range options {
		opt(s)
	}

	s.state = s.hydrate()
	return s, nil
}

// State returns a snapshot of the current session.
func (s *Store) State() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every state change.
// Calling the returned function removes it.
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

// Wait blocks until in-flight logout notifications have finished. It must not
// run concurrently with Logout or RefreshAccessToken, which can start new
// notifications; call it once those have returned, e.g. before exit.
func (s *Store) Wait() {
	s.pending.Wait()
}

// set applies mutate under the lock, persists the result, then notifies
// subscribers outside the lock.
func (s *Store) set(mutate func(st *Session)) {
	s.mu.Lock()
	mutate(&s.state)
	s.persist(s.state)
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Store) notify(snapshot Session) {
	s.listenersMu.Lock()
	fns := make([]func(Session), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(snapshot.clone())
	}
}
