package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ezwallet/wallet-system/internal/api/middleware"
	"github.com/ezwallet/wallet-system/internal/core/domain"
	"github.com/ezwallet/wallet-system/internal/core/ports"
)

type GroupHandler struct {
	groups ports.GroupRepository
}

func NewGroupHandler(groups ports.GroupRepository) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// Get returns a group and its member emails. Guarded by Group capability
// (membership or admin); the guard already resolved the group and stored it
// in the context.
//
// @Summary      Get a group
// @Tags         groups
// @Produce      json
// @Param        name  path  string  true  "Group name"
// @Success      200  {object}  envelope
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/groups/{name} [get]
func (h *GroupHandler) Get(c echo.Context) error {
	group, ok := c.Get(middleware.GroupKey).(*domain.Group)
	if !ok {
		var err error
		group, err = h.groups.FindByName(c.Request().Context(), c.Param("name"))
		if err != nil {
			return err
		}
	}
	return respond(c, http.StatusOK, group)
}
