package handlers

import (
	"net/http"
	"strconv"

	"fjelldrift/internal/http/middleware"
	"fjelldrift/internal/services"
	"fjelldrift/internal/utils"

	"github.com/gin-gonic/gin"
)

func sandingService(c *gin.Context) services.SandingService {
	return services.SandingService{RequestID: middleware.GetRequestID(c)}
}

type createSandingRequest struct {
	Cabin    string `json:"cabin"`
	WishDate string `json:"wish_date"`
	Comment  string `json:"comment"`
}

// POST /api/sanding
func CreateSandingOrder(c *gin.Context) {
	var req createSandingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if middleware.Role(c) != "admin" {
		req.Cabin = middleware.UserID(c)
	}
	id, err := sandingService(c).Create(req.Cabin, req.WishDate, req.Comment, utils.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/sanding
func GetSandingOrders(c *gin.Context) {
	svc := sandingService(c)
	if middleware.Role(c) != "admin" {
		out, err := svc.ListByCabin(middleware.UserID(c))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": out})
		return
	}

	if days := c.Query("window_days"); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			RespondError(c, http.StatusBadRequest, "invalid window_days", err)
			return
		}
		now, ok := referenceTime(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": svc.UpcomingWindow(now, n)})
		return
	}

	out, err := svc.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

// GET /api/sanding/:id
func GetSandingOrderByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	o, err := sandingService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if middleware.Role(c) != "admin" && o.Cabin != middleware.UserID(c) {
		RespondError(c, http.StatusForbidden, "not your order", nil)
		return
	}
	c.JSON(http.StatusOK, o)
}

// PUT /api/sanding/:id/complete
func CompleteSandingOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := sandingService(c).Complete(id, middleware.UserID(c), utils.Now()); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order completed"})
}

// DELETE /api/sanding/:id
func DeleteSandingOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	svc := sandingService(c)
	if middleware.Role(c) != "admin" {
		o, err := svc.Get(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if o.Cabin != middleware.UserID(c) {
			RespondError(c, http.StatusForbidden, "not your order", nil)
			return
		}
	}
	if err := svc.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

// GET /api/sanding/:id/log
func GetSandingStatusLog(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	log, err := sandingService(c).StatusLog(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": log})
}
