package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"concierge-service/pkg/logger"
)

// cloudPlatformScope covers the Vertex AI surface the reasoning engine
// lives behind.
const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// GoogleAuth resolves credentials for outbound Google Cloud calls
type GoogleAuth struct {
	logger logger.Logger
}

// NewGoogleAuth creates a new Google credentials helper
func NewGoogleAuth(logger logger.Logger) *GoogleAuth {
	return &GoogleAuth{
		logger: logger,
	}
}

// TokenSource returns a token source backed by Application Default
// Credentials (GOOGLE_APPLICATION_CREDENTIALS, gcloud login, or the
// ambient service account when running on GCP).
func (a *GoogleAuth) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	source, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve application default credentials: %w", err)
	}

	a.logger.Debug("Resolved application default credentials")
	return source, nil
}
