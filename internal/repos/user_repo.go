package repos

import (
	"context"
	"errors"

	"intellivend/internal/domain"
	"intellivend/internal/events"
	"intellivend/internal/store"
)

// ResetCode is the only code the mock reset flow accepts.
const ResetCode = "123456"

var ErrInvalidResetCode = errors.New("invalid reset code")

type UserRepo struct {
	st  *store.Store
	bus *events.Bus
}

func NewUserRepo(st *store.Store, bus *events.Bus) *UserRepo {
	return &UserRepo{st: st, bus: bus}
}

// Current returns the user stored under the current-user key.
func (r *UserRepo) Current(ctx context.Context) (*domain.User, error) {
	var u domain.User
	found, err := r.st.Get(ctx, store.KeyCurrentUser, &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ClearCurrent(ctx context.Context) error {
	return r.st.Delete(ctx, store.KeyCurrentUser)
}

// Upsert makes u the current user and inserts or replaces it in the list.
func (r *UserRepo) Upsert(ctx context.Context, u domain.User) (domain.User, error) {
	if err := r.st.Set(ctx, store.KeyCurrentUser, u); err != nil {
		return domain.User{}, err
	}
	var users []domain.User
	if _, err := r.st.Get(ctx, store.KeyUsers, &users); err != nil {
		return domain.User{}, err
	}
	replaced := false
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, u)
	}
	if err := r.st.Set(ctx, store.KeyUsers, users); err != nil {
		return domain.User{}, err
	}
	r.bus.Publish(events.UsersChanged)
	return u, nil
}

// List returns the stored users plus the current user when it is missing
// from the list.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if _, err := r.st.Get(ctx, store.KeyUsers, &users); err != nil {
		return nil, err
	}
	cur, err := r.Current(ctx)
	if err != nil {
		return nil, err
	}
	if cur != nil && !containsUser(users, cur.ID) {
		users = append(users, *cur)
	}
	return users, nil
}

// Get answers the demo vendor id directly; other ids are looked up in List.
func (r *UserRepo) Get(ctx context.Context, id string) (domain.User, bool, error) {
	if demo := DemoVendor(); id == demo.ID {
		return demo, true, nil
	}
	users, err := r.List(ctx)
	if err != nil {
		return domain.User{}, false, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

// Delete drops the user from the list. A removed vendor takes its products
// with it; orders are never touched.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	var removed *domain.User
	kept := make([]domain.User, 0, len(users))
	for i := range users {
		if users[i].ID == id {
			removed = &users[i]
			continue
		}
		kept = append(kept, users[i])
	}
	if err := r.st.Set(ctx, store.KeyUsers, kept); err != nil {
		return err
	}

	if removed != nil && removed.Role == domain.RoleVendor {
		var products []domain.Product
		if _, err := r.st.Get(ctx, store.KeyProducts, &products); err != nil {
			return err
		}
		rest := products[:0]
		for _, p := range products {
			if p.VendorID != id {
				rest = append(rest, p)
			}
		}
		if err := r.st.Set(ctx, store.KeyProducts, rest); err != nil {
			return err
		}
		r.bus.Publish(events.ProductsChanged)
	}
	r.bus.Publish(events.UsersChanged)
	return nil
}

// RequestReset pretends to mail a reset code and returns it.
func (r *UserRepo) RequestReset(email string) string { return ResetCode }

func (r *UserRepo) ResetPassword(code, newPassword string) error {
	if code != ResetCode {
		return ErrInvalidResetCode
	}
	return nil
}

func containsUser(users []domain.User, id string) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}
