package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieConfig controls the cookie that carries the session id.
type CookieConfig struct {
	Name   string
	Domain string
	Path   string
	Secure bool
	TTL    time.Duration
}

// Manager ties a Store to a signed session cookie.
type Manager struct {
	store Store
	codec *securecookie.SecureCookie
	cfg   CookieConfig
}

func NewManager(store Store, secret []byte, cfg CookieConfig) *Manager {
	if cfg.Name == "" {
		cfg.Name = "fitchallenge.sid"
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	codec := securecookie.New(secret, nil)
	codec.MaxAge(int(cfg.TTL.Seconds()))
	return &Manager{store: store, codec: codec, cfg: cfg}
}

// Load returns the session referenced by the request cookie. A missing,
// tampered or expired cookie yields a fresh session; only store failures are
// returned as errors.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cfg.Name)
	if err != nil {
		return m.fresh()
	}

	var id string
	if err := m.codec.Decode(m.cfg.Name, cookie.Value, &id); err != nil {
		return m.fresh()
	}

	values, err := m.store.Load(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return m.fresh()
	}
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, Values: values}, nil
}

// Save persists the session and refreshes the cookie, extending its lifetime.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if err := m.store.Save(ctx, s.ID, s.Values, m.cfg.TTL); err != nil {
		return err
	}
	encoded, err := m.codec.Encode(m.cfg.Name, s.ID)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.Name,
		Value:    encoded,
		Path:     m.cfg.Path,
		Domain:   m.cfg.Domain,
		MaxAge:   int(m.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.isNew = false
	return nil
}

// Destroy removes the stored session and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if !s.isNew {
		if err := m.store.Delete(ctx, s.ID); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.Name,
		Value:    "",
		Path:     m.cfg.Path,
		Domain:   m.cfg.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Ping checks the underlying store.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

func (m *Manager) fresh() (*Session, error) {
	raw := securecookie.GenerateRandomKey(32)
	if raw == nil {
		return nil, errors.New("generate session id: entropy source failed")
	}
	return &Session{
		ID:     base64.RawURLEncoding.EncodeToString(raw),
		Values: make(map[string]string),
		isNew:  true,
	}, nil
}
