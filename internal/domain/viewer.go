package domain

// Viewer is the resolved identity of a request: either anonymous or a
// specific authenticated user. Handlers build one from the auth middleware
// and pass it down to projections so viewer-relative fields (following,
// favorited) come out right.
type Viewer struct {
	UserID        string
	Email         string
	Authenticated bool
}

// Anonymous returns the viewer for an unauthenticated request.
func Anonymous() Viewer {
	return Viewer{}
}

// AuthenticatedViewer returns the viewer for a verified user identity.
func AuthenticatedViewer(userID, email string) Viewer {
	return Viewer{
		UserID:        userID,
		Email:         email,
		Authenticated: true,
	}
}
