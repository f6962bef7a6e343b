// user.go - Handles user registration and login

package handlers // Declares the package name

import ( // Import required packages
	"net/http" // HTTP status codes

	"go-commands-backend/services" // Auth use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

type RegisterInput struct { // Struct for registration input
	Username string `json:"username" binding:"required,notblank,min=2,max=100"` // Username (required, 2-100 chars)
	Password string `json:"password" binding:"required,notblank,min=6,max=72"`  // Password (required, bcrypt takes at most 72 bytes)
}

type LoginInput struct { // Struct for login input
	Username string `json:"username" binding:"required,notblank"` // Username (required)
	Password string `json:"password" binding:"required,notblank"` // Password (required)
}

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) { // Handler for user registration
	var input RegisterInput                          // Declare input variable
	if err := c.ShouldBindJSON(&input); err != nil { // Parse and validate JSON input
		_ = c.Error(err)
		return
	}
	if err := h.auth.Register(c.Request.Context(), input.Username, input.Password); err != nil {
		_ = c.Error(err) // Duplicate username or store failure
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user registered successfully"}) // Success response
}

func (h *AuthHandler) Login(c *gin.Context) { // Handler for user login
	var input LoginInput                             // Declare input variable
	if err := c.ShouldBindJSON(&input); err != nil { // Parse and validate JSON input
		_ = c.Error(err)
		return
	}
	token, err := h.auth.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		_ = c.Error(err) // Bad credentials or store failure
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token}) // Return token
}
