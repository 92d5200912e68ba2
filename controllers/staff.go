package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"recert-portal-api/middleware"
	"recert-portal-api/store"
)

// StaffController is the shared component layer of the staff portal: login
// and agency-scoped access to submissions. The portal UI itself lives
// elsewhere.
type StaffController struct {
	Store     store.SubmissionStore
	JWTSecret []byte
	JWTHours  int
}

func NewStaffController(st store.SubmissionStore, secret []byte, hours int) *StaffController {
	if hours <= 0 {
		hours = 24
	}
	return &StaffController{Store: st, JWTSecret: secret, JWTHours: hours}
}

type staffLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a staff member and issues a bearer token scoped to
// their agency.
func (st *StaffController) Login(c *gin.Context) {
	var req staffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff, err := st.Store.FindStaffByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if staff == nil || bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	claims := middleware.StaffClaims{
		StaffID:  staff.StaffID,
		Email:    staff.Email,
		AgencyID: staff.AgencyID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(st.JWTHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(st.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"agency":  staff.Agency,
		"message": "Login successful",
	})
}

// ListSubmissions returns the submissions belonging to the staff member's
// agency, newest activity first.
func (st *StaffController) ListSubmissions(c *gin.Context) {
	agencyID := c.MustGet("staffAgencyID").(int)

	subs, err := st.Store.ListSubmissions(agencyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list submissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs, "count": len(subs)})
}

// GetSubmission returns one submission's accumulated form data, provided it
// belongs to the staff member's agency.
func (st *StaffController) GetSubmission(c *gin.Context) {
	agencyID := c.MustGet("staffAgencyID").(int)
	token := c.Param("token")

	sub, err := st.Store.FindSubmission(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return
	}
	if sub == nil || sub.AgencyID != agencyID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	data, err := st.Store.LoadFormData(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": sub, "data": data})
}
