package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Collection keys, before namespacing.
const (
	KeyUsers       = "users"
	KeyProducts    = "products"
	KeyOrders      = "orders"
	KeyCurrentUser = "user"
)

// Store adds namespacing, JSON encoding and a fixed artificial latency on top
// of a KV. Every write replaces the whole value; a read-modify-write done by a
// caller is not atomic and the last writer wins.
type Store struct {
	kv      KV
	prefix  string
	latency time.Duration
}

func New(kv KV, prefix string, latency time.Duration) *Store {
	return &Store{kv: kv, prefix: prefix, latency: latency}
}

// Key returns the namespaced form of a collection key.
func (s *Store) Key(name string) string { return s.prefix + name }

// Get decodes the value under name into dst. found is false when the key is
// absent; a present but undecodable value is reported as an error.
func (s *Store) Get(ctx context.Context, name string, dst any) (found bool, err error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}
	raw, err := s.kv.Get(ctx, s.Key(name))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", s.Key(name), err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, &DecodeError{Key: s.Key(name), Err: err}
	}
	return true, nil
}

func (s *Store) Set(ctx context.Context, name string, v any) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.Key(name), err)
	}
	if err := s.kv.Set(ctx, s.Key(name), raw); err != nil {
		return fmt.Errorf("set %s: %w", s.Key(name), err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, s.Key(name)); err != nil {
		return fmt.Errorf("delete %s: %w", s.Key(name), err)
	}
	return nil
}

func (s *Store) Close() error { return s.kv.Close() }

func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DecodeError marks a stored value that is not valid JSON for the target type.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Key, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }
