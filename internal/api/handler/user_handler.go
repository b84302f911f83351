package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/marketplace-api/internal/core/ports"
)

// UserHandler exposes the account, playlist and admin operations.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type registerRequest struct {
	Name     string `form:"name"     validate:"required"`
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// Register creates a new account from a multipart form (fields + avatar).
//
// @Summary      Register a new user
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  userResponse
// @Failure      400  {object}  messageResponse
// @Failure      409  {object}  messageResponse
// @Router       /register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	avatar, closeFile, err := formFile(c, "file")
	if err != nil {
		return err
	}
	defer closeFile()

	user, token, err := h.users.Register(c.Request().Context(), req.Name, req.Email, req.Password, avatar)
	if err != nil {
		return err
	}

	setSessionCookie(c, token)
	return c.JSON(http.StatusCreated, userResponse{
		Success: true,
		Message: "Registered Successfully",
		User:    user,
	})
}

// Login verifies credentials and sets the session cookie. Both unknown
// email and wrong password produce the same 401 response.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      201  {object}  userResponse
// @Failure      401  {object}  messageResponse
// @Router       /login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, token)
	return c.JSON(http.StatusCreated, userResponse{
		Success: true,
		Message: fmt.Sprintf("Welcome Back %s", user.Name),
		User:    user,
	})
}

// Logout clears the session cookie. No server-side state exists, so
// discarding the cookie ends the session.
func (h *UserHandler) Logout(c echo.Context) error {
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Logged Out Successfully"})
}

// Profile returns the authenticated user's own document.
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// DeleteProfile removes the caller's own account and ends the session.
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.users.DeleteUser(c.Request().Context(), user.ID.Hex()); err != nil {
		return err
	}
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "User Removed Successfully"})
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.users.ChangePassword(c.Request().Context(), user.ID.Hex(), req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Password Changed Successfully"})
}

// UpdateProfile applies a partial update; omitted fields are no-ops.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.UpdateProfile(c.Request().Context(), user.ID.Hex(), req.Name, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Profile Updated Successfully"})
}

// UpdateProfilePicture replaces the avatar from a multipart upload.
func (h *UserHandler) UpdateProfilePicture(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	avatar, closeFile, err := formFile(c, "file")
	if err != nil {
		return err
	}
	defer closeFile()

	if err := h.users.UpdateAvatar(c.Request().Context(), user.ID.Hex(), avatar); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Profile Picture Updated Successfully"})
}

// ForgotPassword mails a reset link. An unknown email is reported as not
// found rather than silently accepted.
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: fmt.Sprintf("Reset token has been sent to %s", req.Email),
	})
}

// ResetPassword consumes the emailed token from the URL.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Password Changed Successfully"})
}

func (h *UserHandler) AddToPlaylist(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req playlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.AddToPlaylist(c.Request().Context(), user.ID.Hex(), req.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Added To Playlist Successfully"})
}

// RemoveFromPlaylist takes the course id from the query string and is
// idempotent for ids not on the playlist.
func (h *UserHandler) RemoveFromPlaylist(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	courseID := c.QueryParam("id")
	if courseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	if err := h.users.RemoveFromPlaylist(c.Request().Context(), user.ID.Hex(), courseID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Removed From Playlist"})
}

// --- Admin operations ---

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Success: true, Users: users})
}

// UpdateRole flips the target user between the two defined roles.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	if err := h.users.ToggleRole(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Role Updated"})
}

// DeleteUser removes a user and their stored avatar. Deleting yourself
// through the admin route also ends your session.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	if err := h.users.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	if admin, err := currentUser(c); err == nil && admin.ID.Hex() == id {
		clearSessionCookie(c)
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "User Removed Successfully"})
}

// formFile opens a multipart upload field as a service FileInput. The
// returned closer must be deferred by the caller.
func formFile(c echo.Context, field string) (ports.FileInput, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return ports.FileInput{}, nil, echo.NewHTTPError(http.StatusBadRequest, "please enter all fields")
	}
	f, err := fh.Open()
	if err != nil {
		return ports.FileInput{}, nil, echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	return ports.FileInput{Name: fh.Filename, Content: f}, func() { _ = f.Close() }, nil
}
