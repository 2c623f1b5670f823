package handlers

import (
	"net/http"
	"strings"

	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/http/middleware"
	"fjelldrift/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var b models.PlowBooking
	if !BindJSONOrError(c, &b) {
		return
	}
	// Residents book for their own cabin; admins may book for anyone.
	if middleware.Role(c) != "admin" {
		b.Cabin = middleware.UserID(c)
	}
	id, err := bookingService(c).Create(b)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/bookings
// Admins see everything and can filter; residents see their own cabin.
func GetBookings(c *gin.Context) {
	svc := bookingService(c)

	if middleware.Role(c) != "admin" {
		out, err := svc.ListByCabin(middleware.UserID(c))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": out})
		return
	}

	now, ok := referenceTime(c)
	if !ok {
		return
	}
	filter := services.BookingFilter{
		View:      c.Query("view"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if raw := c.Query("subscription_types"); raw != "" {
		filter.SubscriptionTypes = strings.Split(raw, ",")
	}
	out, err := svc.AdminList(filter, now)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /api/bookings/active
func GetActiveBookings(c *gin.Context) {
	now, ok := referenceTime(c)
	if !ok {
		return
	}
	out := bookingService(c).ActiveToday(now)
	c.JSON(http.StatusOK, gin.H{"bookings": out, "count": len(out)})
}

// GET /api/bookings/upcoming
func GetUpcomingBookings(c *gin.Context) {
	now, ok := referenceTime(c)
	if !ok {
		return
	}
	out := bookingService(c).Upcoming(now)
	c.JSON(http.StatusOK, gin.H{"bookings": out, "count": len(out)})
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	b, err := bookingService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if middleware.Role(c) != "admin" && b.Cabin != middleware.UserID(c) {
		RespondError(c, http.StatusForbidden, "not your booking", nil)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /api/bookings/:id
func UpdateBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	svc := bookingService(c)
	if middleware.Role(c) != "admin" {
		b, err := svc.Get(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if b.Cabin != middleware.UserID(c) {
			RespondError(c, http.StatusForbidden, "not your booking", nil)
			return
		}
	}
	var upd models.PlowBookingUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	if err := svc.Update(id, upd); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking updated"})
}

// DELETE /api/bookings/:id
func DeleteBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	svc := bookingService(c)
	if middleware.Role(c) != "admin" {
		b, err := svc.Get(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if b.Cabin != middleware.UserID(c) {
			RespondError(c, http.StatusForbidden, "not your booking", nil)
			return
		}
	}
	if err := svc.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}
