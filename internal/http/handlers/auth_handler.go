package handlers

import (
	"github.com/gofiber/fiber/v2"

	"intellivend/internal/domain"
	"intellivend/internal/log"
	"intellivend/internal/services"
	"intellivend/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
	Cart *services.CartService
	Wish *services.WishlistService
}

type loginRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type resetRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	AvatarURL string          `json:"avatarUrl"`
	Age       *int            `json:"age"`
	Gender    string          `json:"gender"`
	Address   *domain.Address `json:"address"`
}

type registerRequest struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Role    string         `json:"role"`
	Age     string         `json:"age"`
	Gender  string         `json:"gender"`
	Address domain.Address `json:"address"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_email"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Enter a valid email"})
	}
	role, ok := validate.Role(req.Role)
	if !ok {
		return badRequest(c, "role", "Choose buyer, vendor or admin")
	}

	u, err := h.Auth.Login(c.UserContext(), ensureSID(c), email, role)
	if err != nil {
		return fail(c, "auth.login", err)
	}
	log.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID, "role": u.Role})
	return c.JSON(fiber.Map{"user": u, "message": "Welcome back, " + u.Name + "!"})
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "name", "Enter your name")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return badRequest(c, "email", "Enter a valid email")
	}
	role, ok := validate.Role(req.Role)
	if !ok {
		return badRequest(c, "role", "Choose buyer, vendor or admin")
	}
	if _, ok := validate.ZIP(req.Address.Zip); !ok {
		return badRequest(c, "zip", "Enter a valid ZIP code")
	}

	u, err := h.Auth.Register(c.UserContext(), ensureSID(c), services.RegisterInput{
		Name: name, Email: email, Role: role, Age: req.Age, Gender: req.Gender, Address: req.Address,
	})
	if err != nil {
		return fail(c, "auth.register", err)
	}
	log.Audit(c, "auth.register", map[string]any{"user_id": u.ID, "role": u.Role})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": u, "message": "Account created successfully!"})
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
		return fail(c, "auth.logout", err)
	}
	h.Cart.Clear(sid)
	h.Wish.Clear(sid)
	expireSID(c)
	log.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"message": "You have been logged out."})
}

// GET /api/v1/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": currentUser(c)})
}

// PUT /api/v1/me
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "name", "Enter your name")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return badRequest(c, "email", "Enter a valid email")
	}
	u := domain.User{
		Name:      name,
		Email:     email,
		AvatarURL: req.AvatarURL,
		Age:       req.Age,
		Gender:    req.Gender,
		Address:   req.Address,
	}

	saved, err := h.Auth.UpdateProfile(c.UserContext(), ensureSID(c), u)
	if err != nil {
		return fail(c, "profile.update", err)
	}
	log.Audit(c, "profile.update", nil)
	return c.JSON(fiber.Map{"user": saved, "message": "Profile updated successfully!"})
}

// POST /api/v1/auth/reset/request
func (h *AuthHandler) RequestReset(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return badRequest(c, "email", "Enter a valid email")
	}
	code, err := h.Auth.RequestReset(c.UserContext(), email)
	if err != nil {
		return fail(c, "auth.reset.request", err)
	}
	log.Audit(c, "auth.reset.request", nil)
	// There is no mail delivery; the demo shows the code to the user.
	return c.JSON(fiber.Map{"code": code})
}

// POST /api/v1/auth/reset
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	code, ok := validate.ResetCode(req.Code)
	if !ok {
		log.Security(c, "auth.reset.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid reset code"})
	}
	if err := h.Auth.ResetPassword(c.UserContext(), code, req.Password); err != nil {
		return fail(c, "auth.reset", err)
	}
	log.Audit(c, "auth.reset.success", nil)
	return c.JSON(fiber.Map{"message": "Password updated. Please sign in."})
}
