package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sowin-pos/internal/domain"
	"sowin-pos/internal/service/account"
)

type loginResponse struct {
	Token      string           `json:"token"`
	TerminalID string           `json:"terminalId"`
	User       domain.User      `json:"user"`
	Modules    []account.Module `json:"modules"`
}

func newLoginResponse(sess *domain.TerminalSession) loginResponse {
	return loginResponse{
		Token:      sess.Token,
		TerminalID: sess.TerminalID,
		User:       sess.User,
		Modules:    account.Allowed(sess.User),
	}
}

func (h *handlers) login(c *gin.Context) {
	var in account.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid login payload")
		return
	}
	sess, err := h.deps.Accounts.Login(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newLoginResponse(sess))
}

func (h *handlers) logout(c *gin.Context) {
	sess := currentSession(c)
	if err := h.deps.Accounts.Logout(c.Request.Context(), sess.Token); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, newLoginResponse(currentSession(c)))
}

func (h *handlers) listUsers(c *gin.Context) {
	users, err := h.deps.Accounts.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *handlers) registerUser(c *gin.Context) {
	var in account.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid user payload")
		return
	}
	u, err := h.deps.Accounts.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *handlers) deleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Accounts.DeleteUser(c.Request.Context(), currentSession(c).User, id); err != nil {
		writeError(c, err)
		return
	}
	h.deps.Sessions.Drop(id)
	c.Status(http.StatusNoContent)
}

func (h *handlers) listRoles(c *gin.Context) {
	roles, err := h.deps.Accounts.ListRoles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (h *handlers) createRole(c *gin.Context) {
	var in domain.Role
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid role payload")
		return
	}
	r, err := h.deps.Accounts.CreateRole(c.Request.Context(), in.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *handlers) deleteRole(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Accounts.DeleteRole(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
