// auth.go - JWT authentication middleware
// This file resolves the caller of every protected route
//
// Authentication Flow:
// 1. Extract JWT token from Authorization header
// 2. Validate token signature, issuer and expiration
// 3. Resolve the token's user id and check it against the subject (username)
// 4. Store the user in context for handlers
//
// The resolved user is the only authorization context: there are no roles.

package middleware // Declares the package name

import ( // Import required packages
	"errors"  // For matching repository errors
	"strings" // String operations (for header parsing)

	"go-commands-backend/apierrors"  // Error kinds rendered by ErrorHandler
	"go-commands-backend/models"     // User model
	"go-commands-backend/repository" // User lookups
	"go-commands-backend/services"   // Token claims

	"github.com/gin-gonic/gin" // Gin web framework (for middleware)
)

// CurrentUserKey is the gin context key holding the authenticated *models.User
const CurrentUserKey = "current_user"

// TokenVerifier is the part of the token service the middleware needs
type TokenVerifier interface {
	Verify(token string) (*services.Claims, error)
}

// Auth - Returns a Gin middleware function for JWT authentication
func Auth(tokens TokenVerifier, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) { // Middleware handler (runs before each protected request)
		header := c.GetHeader("Authorization")                     // Get Authorization header
		if header == "" || !strings.HasPrefix(header, "Bearer ") { // If missing or invalid format
			abort(c, apierrors.ErrUnauthenticated)
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")) // Remove 'Bearer ' prefix
		claims, err := tokens.Verify(tokenStr)
		if err != nil { // If token is invalid or expired
			abort(c, apierrors.ErrUnauthenticated)
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID) // Look up the user the token was issued to
		if errors.Is(err, repository.ErrNotFound) {
			// Valid token for a user that no longer exists
			abort(c, apierrors.Internal(errors.New("token subject "+claims.Subject+" has no stored user")))
			return
		}
		if err != nil {
			abort(c, apierrors.Internal(err))
			return
		}
		if user.Username != claims.Subject { // Id and subject must name the same account
			abort(c, apierrors.Internal(errors.New("token subject "+claims.Subject+" does not match stored user")))
			return
		}

		c.Set(CurrentUserKey, user) // Store user in Gin context
		c.Next()                    // Continue to next handler (authentication successful)
	}
}

// CurrentUser returns the user stored by Auth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// abort hands err to ErrorHandler and stops the chain
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
