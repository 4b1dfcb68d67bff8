package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/tanvir-dev/versebook/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID returns the authenticated user's hex id from the JWT claims,
// or "" when unauthenticated
func currentUserID(c echo.Context) string {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return ""
	}
	return claims.UserID
}

// currentUserObjectID returns the authenticated user's ObjectID from the JWT
// claims
func currentUserObjectID(c echo.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(currentUserID(c))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// containsObjectID reports whether id is in the given reference set
func containsObjectID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
