package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"sowin-pos/internal/domain"
	"sowin-pos/internal/service/catalog"
	"sowin-pos/internal/service/report"
	"sowin-pos/internal/service/sale"
)

type addLineRequest struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type tenderedRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type addLineResponse struct {
	Product *domain.Product `json:"product"`
	Sale    sale.View       `json:"sale"`
}

type confirmResponse struct {
	Sale   *domain.Sale     `json:"sale"`
	Ticket *report.Document `json:"ticket,omitempty"`
}

type closeResponse struct {
	Closing  *report.Closing  `json:"closing"`
	Document *report.Document `json:"document"`
}

type stockedProduct struct {
	domain.Product
	Available int `json:"disponible"`
}

func cashierOf(sess *domain.TerminalSession) sale.Cashier {
	return sale.Cashier{UserID: sess.User.ID, Name: sess.User.Username}
}

// withSale runs fn on the caller's open sale and answers with the resulting view.
func (h *handlers) withSale(c *gin.Context, fn func(*sale.Session) error) {
	var view sale.View
	err := h.deps.Sessions.With(currentSession(c).User.ID, func(s *sale.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		view = s.View()
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) currentSale(c *gin.Context) {
	h.withSale(c, func(*sale.Session) error { return nil })
}

func (h *handlers) clearSale(c *gin.Context) {
	h.withSale(c, func(s *sale.Session) error {
		s.Clear()
		return nil
	})
}

func (h *handlers) addLine(c *gin.Context) {
	var in addLineRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid line payload")
		return
	}
	var out addLineResponse
	err := h.deps.Sessions.With(currentSession(c).User.ID, func(s *sale.Session) error {
		p, err := h.deps.Sales.ResolveAndAdd(c.Request.Context(), s, in.Code, in.Quantity)
		if err != nil {
			return err
		}
		out = addLineResponse{Product: p, Sale: s.View()}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) removeLine(c *gin.Context) {
	id, ok := idParam(c, "productId")
	if !ok {
		return
	}
	h.withSale(c, func(s *sale.Session) error {
		s.Remove(id)
		return nil
	})
}

func (h *handlers) setLineQuantity(c *gin.Context) {
	id, ok := idParam(c, "productId")
	if !ok {
		return
	}
	var in quantityRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid quantity payload")
		return
	}
	h.withSale(c, func(s *sale.Session) error {
		return s.SetQuantity(id, in.Quantity)
	})
}

func (h *handlers) beginEdit(c *gin.Context) {
	h.withSale(c, func(s *sale.Session) error { return s.BeginEdit() })
}

func (h *handlers) commitEdit(c *gin.Context) {
	h.withSale(c, func(s *sale.Session) error { return s.CommitEdit() })
}

func (h *handlers) cancelEdit(c *gin.Context) {
	h.withSale(c, func(s *sale.Session) error { return s.CancelEdit() })
}

func (h *handlers) setTendered(c *gin.Context) {
	var in tenderedRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid amount")
		return
	}
	h.withSale(c, func(s *sale.Session) error { return s.SetTendered(in.Amount) })
}

// confirmSale submits the open sale. A ticket that cannot be rendered or
// printed does not undo the sale.
func (h *handlers) confirmSale(c *gin.Context) {
	ctx := c.Request.Context()
	sess := currentSession(c)
	var confirmed *domain.Sale
	err := h.deps.Sessions.With(sess.User.ID, func(s *sale.Session) error {
		var err error
		confirmed, err = h.deps.Sales.Confirm(ctx, s, cashierOf(sess))
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	ticket, err := h.deps.Reports.Ticket(ctx, h.businessProfile(ctx), *confirmed)
	if err != nil {
		h.logger.Printf("httpserver: ticket sale=%d error=%v", confirmed.ID, err)
	}
	c.JSON(http.StatusCreated, confirmResponse{Sale: confirmed, Ticket: ticket})
}

func (h *handlers) closeRegister(c *gin.Context) {
	ctx := c.Request.Context()
	sess := currentSession(c)
	closing, doc, err := h.deps.Reports.Close(ctx, h.businessProfile(ctx), sess.User.ID, sess.User.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, closeResponse{Closing: closing, Document: doc})
}

func (h *handlers) mySales(c *gin.Context) {
	sales, err := h.deps.Sales.ListByCashier(c.Request.Context(), currentSession(c).User.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *handlers) allSales(c *gin.Context) {
	sales, err := h.deps.Sales.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *handlers) lookupProduct(c *gin.Context) {
	p, err := h.deps.Catalog.FindByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	var out stockedProduct
	err = h.deps.Sessions.With(currentSession(c).User.ID, func(s *sale.Session) error {
		out = stockedProduct{Product: *p, Available: catalog.AvailableStock(*p, s)}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) searchCatalog(c *gin.Context) {
	var categoryID int64
	if v := strings.TrimSpace(c.Query("category")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 0 {
			badRequest(c, "invalid category")
			return
		}
		categoryID = id
	}
	matches, err := h.deps.Catalog.Search(c.Request.Context(), c.Query("q"), categoryID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := []stockedProduct{}
	err = h.deps.Sessions.With(currentSession(c).User.ID, func(s *sale.Session) error {
		for p := range matches {
			out = append(out, stockedProduct{Product: p, Available: catalog.AvailableStock(p, s)})
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
