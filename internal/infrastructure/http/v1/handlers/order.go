package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka/internal/core/types"
	"lavka/internal/domain/orders"
	"lavka/internal/domain/profile"
	"lavka/internal/domain/reports"
	"lavka/internal/infrastructure/http/v1/dto"
)

// OrderHandler handles order endpoints. A request's items are accumulated
// into a draft against the current snapshot and then committed atomically.
type OrderHandler struct {
	*BaseHandler
	profiles  *profile.Service
	processor *orders.Processor
	reports   *reports.Service
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(base *BaseHandler, profiles *profile.Service, processor *orders.Processor, rep *reports.Service) *OrderHandler {
	return &OrderHandler{BaseHandler: base, profiles: profiles, processor: processor, reports: rep}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	profileName := h.ProfileName(c)

	snapshot, err := h.profiles.Get(ctx, profileName)
	if err != nil {
		h.Error(c, err)
		return
	}

	draft := orders.NewDraft()
	for _, item := range req.Items {
		if err := draft.AddItem(snapshot, item.Product, types.NewQuantity(item.Quantity)); err != nil {
			h.Error(c, err)
			return
		}
	}

	order, err := h.processor.Commit(ctx, profileName, draft, req.Delivery)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromOrder(order))
}

func (h *OrderHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 15)

	out, err := h.reports.RecentOrders(c.Request.Context(), h.ProfileName(c), limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOrders(out))
}

func (h *OrderHandler) Range(c *gin.Context) {
	from, ok := h.ParseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseDateQuery(c, "to")
	if !ok {
		return
	}

	out, err := h.reports.OrdersInRange(c.Request.Context(), h.ProfileName(c),
		from, to, c.Query("product"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOrders(out))
}
