package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"intellivend/internal/domain"
	"intellivend/internal/repos"
)

// DemoVendorEmail signs in as the seeded vendor so its listings stay editable.
const DemoVendorEmail = "alex.developer@example.com"

var ErrNotSignedIn = errors.New("not signed in")

type RegisterInput struct {
	Name    string
	Email   string
	Role    domain.Role
	Age     string
	Gender  string
	Address domain.Address
}

// AuthService keeps the signed-in user per browser session. There are no
// credentials; signing in fabricates or refreshes the user record.
type AuthService struct {
	Users      *repos.UserRepo
	ResetDelay time.Duration
	Now        func() time.Time

	mu       sync.RWMutex
	sessions map[string]domain.User
}

func NewAuthService(users *repos.UserRepo, resetDelay time.Duration) *AuthService {
	return &AuthService{Users: users, ResetDelay: resetDelay, Now: time.Now, sessions: map[string]domain.User{}}
}

func (s *AuthService) Login(ctx context.Context, sid, email string, role domain.Role) (*domain.User, error) {
	ms := s.Now().UnixMilli()
	var id string
	switch {
	case email == DemoVendorEmail && role == domain.RoleVendor:
		id = "v1"
	case role == domain.RoleAdmin:
		id = "admin-" + strconv.FormatInt(ms, 10)
	default:
		id = "u-" + strconv.FormatInt(ms, 10)
	}
	name, _, _ := strings.Cut(email, "@")
	u := domain.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      role,
		AvatarURL: avatar(email),
	}
	return s.bind(ctx, sid, u)
}

func (s *AuthService) Register(ctx context.Context, sid string, in RegisterInput) (*domain.User, error) {
	addr := in.Address
	u := domain.User{
		ID:        fmt.Sprintf("u-%d", s.Now().UnixMilli()),
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		AvatarURL: avatar(in.Name),
		Gender:    in.Gender,
		Address:   &addr,
	}
	if age, err := strconv.Atoi(strings.TrimSpace(in.Age)); err == nil && age != 0 {
		u.Age = &age
	}
	return s.bind(ctx, sid, u)
}

// UpdateProfile saves u for the session's user. The id, role and verified
// badge cannot change here.
func (s *AuthService) UpdateProfile(ctx context.Context, sid string, u domain.User) (*domain.User, error) {
	cur := s.CurrentUser(sid)
	if cur == nil {
		return nil, ErrNotSignedIn
	}
	verified, err := s.storedVerified(ctx, *cur)
	if err != nil {
		return nil, err
	}
	u.ID, u.Role, u.IsVerified = cur.ID, cur.Role, verified
	return s.bind(ctx, sid, u)
}

// storedVerified reads the badge from the user list, which an admin may have
// toggled since the session was bound.
func (s *AuthService) storedVerified(ctx context.Context, cur domain.User) (bool, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.ID == cur.ID {
			return u.IsVerified, nil
		}
	}
	return cur.IsVerified, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
	return s.Users.ClearCurrent(ctx)
}

// CurrentUser returns nil for anonymous sessions.
func (s *AuthService) CurrentUser(sid string) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.sessions[sid]
	if !ok {
		return nil
	}
	return &u
}

func (s *AuthService) RequestReset(ctx context.Context, email string) (string, error) {
	if err := sleep(ctx, s.ResetDelay); err != nil {
		return "", err
	}
	return s.Users.RequestReset(email), nil
}

func (s *AuthService) ResetPassword(ctx context.Context, code, newPassword string) error {
	if err := sleep(ctx, s.ResetDelay); err != nil {
		return err
	}
	return s.Users.ResetPassword(code, newPassword)
}

func (s *AuthService) bind(ctx context.Context, sid string, u domain.User) (*domain.User, error) {
	saved, err := s.Users.Upsert(ctx, u)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.sessions[sid] = saved
	s.mu.Unlock()
	return &saved, nil
}

func avatar(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
