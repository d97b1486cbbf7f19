package userctx

import "context"

// Context key type
type contextKey string

const operatorIDKey contextKey = "operator_id"
const displayNameKey contextKey = "display_name"

// SetOperatorID adds the operator ID to request context
func SetOperatorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operatorIDKey, id)
}

// GetOperatorID retrieves the operator ID from request context; "" means anonymous
func GetOperatorID(ctx context.Context) string {
	if operatorID := ctx.Value(operatorIDKey); operatorID != nil {
		if id, ok := operatorID.(string); ok {
			return id
		}
	}
	return ""
}

// SetDisplayName adds the operator's display name to request context
func SetDisplayName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, displayNameKey, name)
}

// GetDisplayName retrieves the display name from request context
func GetDisplayName(ctx context.Context) string {
	name, ok := ctx.Value(displayNameKey).(string)
	if !ok || name == "" {
		return "anonymous"
	}
	return name
}
