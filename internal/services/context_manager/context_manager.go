package context_manager

import (
	"context"
	"strings"
)

type UserID struct{}

type RequestID struct{}

// SetUserContext stores the authenticated user id into context.
// Ids come from the auth provider and are case sensitive.
func SetUserContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserID{}, strings.TrimSpace(userID))
}

// GetUserContext retrieves the user id from context, "" when anonymous.
func GetUserContext(ctx context.Context) string {
	userID, ok := ctx.Value(UserID{}).(string)
	if !ok {
		return ""
	}
	return userID
}

func SetRequestContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestID{}, requestID)
}

func GetRequestContext(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestID{}).(string)
	return requestID
}
