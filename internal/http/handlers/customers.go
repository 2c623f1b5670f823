package handlers

import (
	"net/http"

	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/http/middleware"
	"fjelldrift/internal/services"

	"github.com/gin-gonic/gin"
)

func customerService(c *gin.Context) services.CustomerService {
	return services.CustomerService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/admin/customers
func GetCustomers(c *gin.Context) {
	svc := customerService(c)
	if c.Query("subscription") == models.SubscriptionAnnual {
		out, err := svc.AnnualSubscribers()
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": out})
		return
	}
	out, err := svc.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": out})
}

// GET /api/customers/:id
func GetCustomerByID(c *gin.Context) {
	id := c.Param("id")
	if middleware.Role(c) != "admin" && middleware.UserID(c) != id {
		RespondError(c, http.StatusForbidden, "cannot view another cabin's profile", nil)
		return
	}
	customer, err := customerService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// PUT /api/admin/customers/:id
func UpdateCustomer(c *gin.Context) {
	var upd models.CustomerUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	if err := customerService(c).Update(c.Param("id"), upd); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer updated"})
}
