package handlers

import (
	"net/http"

	"fjelldrift/internal/domain"
	"fjelldrift/internal/http/middleware"
	"fjelldrift/internal/repositories"
	"fjelldrift/internal/services"
	"fjelldrift/internal/utils"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	CabinID  string `json:"cabin_id"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.CustomerService{RequestID: middleware.GetRequestID(c)}
	history := repositories.LoginHistoryRepo{}
	warn := utils.ModuleWarnf("auth")
	stamp := utils.FormatDateTime(utils.Now())

	customer, err := svc.CheckPassword(req.CabinID, req.Password)
	if err != nil {
		if herr := history.Insert(req.CabinID, stamp, false); herr != nil {
			warn("could not record failed login for %s: %v", req.CabinID, herr)
		}
		if domain.IsValidation(err) || domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "wrong cabin id or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	role := customer.Role
	if role == "" {
		role = "user"
	}
	token, err := middleware.GenerateToken(customer.ID, role)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not issue token", err)
		return
	}
	if herr := history.Insert(customer.ID, stamp, true); herr != nil {
		warn("could not record login for %s: %v", customer.ID, herr)
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":           customer.ID,
			"name":         customer.Name,
			"role":         role,
			"subscription": customer.Subscription,
		},
	})
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

// PUT /api/customers/:id/password
func ChangePassword(c *gin.Context) {
	id := c.Param("id")
	if middleware.Role(c) != "admin" && middleware.UserID(c) != id {
		RespondError(c, http.StatusForbidden, "cannot change another cabin's password", nil)
		return
	}
	var req changePasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.CustomerService{RequestID: middleware.GetRequestID(c)}
	if err := svc.SetPassword(id, req.Password); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// GET /api/admin/login-history?start=...&end=...
func LoginHistory(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		RespondError(c, http.StatusBadRequest, "start and end are required", nil)
		return
	}
	entries, err := repositories.LoginHistoryRepo{}.ListBetween(start, end)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not load login history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
