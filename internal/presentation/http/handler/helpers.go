package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetAccountID extracts the account ID from the Gin context
func GetAccountID(c *gin.Context) *uuid.UUID {
	accountIDVal, exists := c.Get("account_id")
	if !exists {
		return nil
	}
	accountID, ok := accountIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &accountID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}
