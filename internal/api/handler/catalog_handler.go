package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/emulator/ports"
)

// CatalogHandler serves categories and the provider directory.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Categories(c echo.Context) error {
	cats, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) Providers(c echo.Context) error {
	ps, err := h.service.Providers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ps)
}

// Search handles GET /serviceprovider/search?q=.
func (h *CatalogHandler) Search(c echo.Context) error {
	ps, err := h.service.SearchProviders(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ps)
}

func (h *CatalogHandler) Provider(c echo.Context) error {
	p, err := h.service.Provider(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PATCH /serviceprovider/:id.
func (h *CatalogHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var patch domain.ProviderPatch
	if err := c.Bind(&patch); err != nil {
		return invalidPayload()
	}

	p, err := h.service.UpdateProvider(c.Request().Context(), actor, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /serviceprovider/:id.
func (h *CatalogHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteProvider(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
