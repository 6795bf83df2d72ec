package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookreserve/internal/services"
	"bookreserve/internal/stores"
)

// User-facing outcome messages. The reserve failure message is identical for
// an unknown user and an unavailable book on purpose.
const (
	msgIDTaken          = "This ID is already in use."
	msgIDAvailable      = "This ID is available."
	msgPasswordMatch    = "Passwords match."
	msgPasswordMismatch = "Passwords do not match."
	msgNameTooShort     = "Please enter a name of at least 3 characters."
	msgRegisterFailed   = "Registration failed."
	msgRegisterOK       = "Registration successful."
	msgLoginOK          = "Login successful."
	msgLoginFailed      = "Login failed."
	msgReserveOK        = "Reservation complete!"
	msgReserveFailed    = "This book cannot be reserved."
)

type LibraryHandler struct {
	svc services.ReservationService
}

func RegisterRoutes(r *gin.Engine, svc services.ReservationService) {
	h := &LibraryHandler{svc: svc}

	// Account endpoints
	r.GET("/idcheck/:id", h.checkID)
	r.POST("/pwcheck", h.checkPassword)
	r.POST("/register", h.register)
	r.POST("/login", h.login)

	// Catalog and reservation endpoints
	r.GET("/books", h.listBooks)
	r.POST("/reserve", h.reserve)
	r.GET("/reservations/:name", h.reservationsForName)

	// Admin endpoints
	r.GET("/admin/reservations", h.allReservations)
	r.POST("/admin/book", h.addBook)
	r.PUT("/admin/book/:id", h.updateBook)
	r.DELETE("/admin/book/:id", h.deleteBook)
	r.PUT("/admin/book/:id/reservation", h.overrideAvailability)
	r.GET("/admin/book/:id/reservation", h.bookReservation)
}

func (h *LibraryHandler) checkID(c *gin.Context) {
	if h.svc.IDExists(c.Param("id")) {
		c.JSON(http.StatusOK, gin.H{"message": msgIDTaken})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgIDAvailable})
}

type passwordCheckRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *LibraryHandler) checkPassword(c *gin.Context) {
	var req passwordCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password != "" && req.Password == req.ConfirmPassword {
		c.JSON(http.StatusOK, gin.H{"message": msgPasswordMatch})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgPasswordMismatch})
}

type registerRequest struct {
	UserID   string `json:"userid"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// register answers 200 with a message for every validation outcome; only a
// malformed body is a 400.
func (h *LibraryHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.RegisterUser(req.UserID, req.Password, req.Name)
	switch {
	case errors.Is(err, stores.ErrNameTooShort):
		c.JSON(http.StatusOK, gin.H{"message": msgNameTooShort})
	case err != nil:
		c.JSON(http.StatusOK, gin.H{"message": msgRegisterFailed})
	default:
		c.JSON(http.StatusOK, gin.H{"message": msgRegisterOK})
	}
}

type loginRequest struct {
	UserID   string `json:"userid"`
	Password string `json:"password"`
}

func (h *LibraryHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.svc.Login(req.UserID, req.Password) {
		c.JSON(http.StatusOK, gin.H{"message": msgLoginOK})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgLoginFailed})
}

func (h *LibraryHandler) listBooks(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.SearchBooks(c.Query("title")))
}

type reserveRequest struct {
	UserID    string `json:"userid"`
	BookTitle string `json:"bookTitle"`
}

func (h *LibraryHandler) reserve(c *gin.Context) {
	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.svc.Reserve(req.UserID, req.BookTitle); err != nil {
		// Which precondition failed is intentionally not disclosed.
		c.JSON(http.StatusOK, gin.H{"message": msgReserveFailed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgReserveOK})
}

func (h *LibraryHandler) reservationsForName(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ReservationsForName(c.Param("name")))
}

func (h *LibraryHandler) allReservations(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.AllReservations())
}

type addBookRequest struct {
	ID     int    `json:"id" binding:"required"`
	Title  string `json:"title" binding:"required"`
	Author string `json:"author" binding:"required"`
	Genre  string `json:"genre" binding:"required"`
}

func (h *LibraryHandler) addBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := h.svc.AddBook(req.ID, req.Title, req.Author, req.Genre); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	c.Status(http.StatusOK)
}

type updateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Genre       *string `json:"genre"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (h *LibraryHandler) updateBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	patch := stores.BookPatch{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		IsAvailable: req.IsAvailable,
	}
	if err := h.svc.UpdateBook(id, patch); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

func (h *LibraryHandler) deleteBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if err := h.svc.DeleteBook(id); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

type overrideRequest struct {
	// An absent field means unavailable, like a false value.
	IsAvailable bool `json:"isAvailable"`
}

func (h *LibraryHandler) overrideAvailability(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := h.svc.SetAvailability(id, req.IsAvailable); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// bookReservation returns {} when the book has no reservation; a missing
// book is not an error here.
func (h *LibraryHandler) bookReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	reservation, ok := h.svc.BookReservation(id)
	if !ok {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":            reservation.UserName,
		"reservationDate": reservation.ReservationDate,
	})
}
