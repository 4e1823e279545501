package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sowin-pos/internal/domain"
	"sowin-pos/internal/service/inventory"
)

const dateLayout = "2006-01-02"

type rangeRequest struct {
	From string `json:"fechaInicio" form:"from"`
	To   string `json:"fechaFin" form:"to"`
}

func (r rangeRequest) parse() (inventory.DateRange, error) {
	var out inventory.DateRange
	var err error
	if r.From != "" {
		if out.From, err = time.ParseInLocation(dateLayout, r.From, time.Local); err != nil {
			return out, err
		}
	}
	if r.To != "" {
		if out.To, err = time.ParseInLocation(dateLayout, r.To, time.Local); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.deps.Inventory.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) createProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid product payload")
		return
	}
	creator := currentSession(c).User
	created, err := h.deps.Inventory.CreateProduct(c.Request.Context(), p, &creator)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) updateProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid product payload")
		return
	}
	p.ID = id
	updated, err := h.deps.Inventory.UpdateProduct(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Inventory.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Inventory.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *handlers) createCategory(c *gin.Context) {
	var in domain.Category
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid category payload")
		return
	}
	created, err := h.deps.Inventory.CreateCategory(c.Request.Context(), in.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) updateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in domain.Category
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid category payload")
		return
	}
	in.ID = id
	updated, err := h.deps.Inventory.UpdateCategory(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Inventory.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listSuppliers(c *gin.Context) {
	suppliers, err := h.deps.Inventory.ListSuppliers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *handlers) createSupplier(c *gin.Context) {
	var in domain.Supplier
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid supplier payload")
		return
	}
	created, err := h.deps.Inventory.CreateSupplier(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) updateSupplier(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in domain.Supplier
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid supplier payload")
		return
	}
	in.ID = id
	updated, err := h.deps.Inventory.UpdateSupplier(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteSupplier(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Inventory.DeleteSupplier(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listEntries(c *gin.Context) {
	entries, err := h.deps.Inventory.ListEntries(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *handlers) recordEntry(c *gin.Context) {
	var in domain.StockEntry
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid entry payload")
		return
	}
	by := currentSession(c).User
	if err := h.deps.Inventory.RecordEntry(c.Request.Context(), in, &by); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *handlers) listMovements(c *gin.Context) {
	var q rangeRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid date range")
		return
	}
	r, err := q.parse()
	if err != nil {
		badRequest(c, "dates must use YYYY-MM-DD")
		return
	}
	movements, err := h.deps.Inventory.ListMovements(c.Request.Context(), r)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, movements)
}

func (h *handlers) deleteMovement(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Inventory.DeleteMovement(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) deleteMovementRange(c *gin.Context) {
	var in rangeRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid date range")
		return
	}
	r, err := in.parse()
	if err != nil {
		badRequest(c, "dates must use YYYY-MM-DD")
		return
	}
	res, err := h.deps.Inventory.DeleteMovementRange(c.Request.Context(), r)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) purgeMovements(c *gin.Context) {
	var in domain.MovementPurge
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid purge payload")
		return
	}
	n, err := h.deps.Inventory.PurgeMovements(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eliminados": n})
}
