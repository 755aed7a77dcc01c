package services

import "context"

// Actor identifies who initiated a change, for audit purposes.
type Actor struct {
	UserID    string
	IPAddress string
	UserAgent string
}

// SystemActor is used for changes made from the operator CLI.
var SystemActor = Actor{UserID: "system"}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
