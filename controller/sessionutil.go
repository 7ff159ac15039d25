package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (ctrl *controller) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiError("bad_request", "invalid login payload"))
	}

	acct, err := ctrl.model.FindAccountByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusUnauthorized, apiError("unauthorized", "unknown email or wrong password"))
		}
		return c.JSON(http.StatusInternalServerError, apiError("db_error", "could not load account"))
	}
	if err := acct.CheckPassword(req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, apiError("unauthorized", "unknown email or wrong password"))
	}

	sess, _ := session.Get("session", c)
	sess.Options.HttpOnly = true
	sess.Options.SameSite = http.SameSiteLaxMode
	sess.Values["ownerid"] = acct.OwnerID
	sess.Values["uid"] = acct.ID
	sess.Values["admin"] = acct.IsAdmin
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return c.JSON(http.StatusInternalServerError, apiError("session_error", "could not save session"))
	}

	if err := ctrl.model.TouchLastLogin(acct); err != nil {
		ctrl.logger.Warn("cannot update last login", "uid", acct.ID, "error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func (ctrl *controller) logout(c echo.Context) error {
	sess, _ := session.Get("session", c)
	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return c.JSON(http.StatusInternalServerError, apiError("session_error", "could not clear session"))
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// RequireLogin puts the owner id from the session into the context or
// rejects the request.
func (ctrl *controller) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get("session", c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, apiError("unauthorized", "login required"))
		}
		ownerID, ok := sess.Values["ownerid"].(uint)
		if !ok {
			return c.JSON(http.StatusUnauthorized, apiError("unauthorized", "login required"))
		}
		c.Set("ownerid", ownerID)
		if admin, ok := sess.Values["admin"].(bool); ok {
			c.Set("admin", admin)
		}
		return next(c)
	}
}

func (ctrl *controller) adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if admin, _ := c.Get("admin").(bool); !admin {
			return c.JSON(http.StatusForbidden, apiError("forbidden", "admin access required"))
		}
		return next(c)
	}
}

func ownerIDFromContext(c echo.Context) uint {
	if v, ok := c.Get("ownerid").(uint); ok {
		return v
	}
	return 0
}
