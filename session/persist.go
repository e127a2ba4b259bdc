package session

import (
	"encoding/json"

	"github.com/jrsteele09/quickserve-session/internal/utils"
	"github.com/jrsteele09/quickserve-session/users"
)

// persistVersion is the version marker written next to the state. Blobs with
// any other version are ignored; there are no migrations.
const persistVersion = 0

// persistedState is the durable subset of Session. Absent values are written
// as JSON null so blobs written by the browser client read back unchanged.
type persistedState struct {
	User            users.User `json:"user"`
	AccessToken     *string    `json:"accessToken"`
	RefreshToken    *string    `json:"refreshToken"`
	IsAuthenticated bool       `json:"isAuthenticated"`
}

type persistedBlob struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return utils.Ptr(s)
}

func encodeSession(st Session) ([]byte, error) {
	return json.Marshal(persistedBlob{
		State: persistedState{
			User:            st.User,
			AccessToken:     nonEmpty(st.AccessToken),
			RefreshToken:    nonEmpty(st.RefreshToken),
			IsAuthenticated: st.IsAuthenticated,
		},
		Version: persistVersion,
	})
}

func decodeSession(data string) (Session, error) {
	var blob persistedBlob
	if err := json.Unmarshal([]byte(data), &blob); err != nil {
		return Session{}, err
	}
	if blob.Version != persistVersion {
		return Session{}, errUnsupportedVersion(blob.Version)
	}
	return Session{
		User:            blob.State.User,
		AccessToken:     utils.Value(blob.State.AccessToken),
		RefreshToken:    utils.Value(blob.State.RefreshToken),
		IsAuthenticated: blob.State.IsAuthenticated,
	}, nil
}

// persist writes the durable subset. Storage failures are logged, not
// returned: the in-memory state stays authoritative. Caller holds s.mu.
func (s *Store) persist(st Session) {
	data, err := encodeSession(st)
	if err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("failed to encode session")
		return
	}
	if err := s.kv.SetItem(s.key, string(data)); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("failed to persist session")
	}
}

// hydrate reads the persisted session. Anything missing or unreadable is
// treated as no session at all.
func (s *Store) hydrate() Session {
	data, ok, err := s.kv.GetItem(s.key)
	if err != nil {
		s.logger.Debug().Err(err).Str("key", s.key).Msg("persisted session unreadable, starting empty")
		return Session{}
	}
	if !ok || data == "" {
		return Session{}
	}

	st, err := decodeSession(data)
	if err != nil {
		s.logger.Debug().Err(err).Str("key", s.key).Msg("persisted session corrupt, starting empty")
		return Session{}
	}
	return st
}
