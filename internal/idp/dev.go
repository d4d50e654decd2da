package idp

import "context"

const DevEmail = "googleuser@example.com"

// Dev signs everyone in as DevEmail. For local runs without a Google client.
type Dev struct{}

func (Dev) Name() string { return "google" }

func (Dev) Verify(context.Context, string) (Identity, error) {
	return Identity{Email: DevEmail}, nil
}

// Local is the provider used when no Google client is configured. A pasted
// ID token is read the way Payload reads it; no token signs in as DevEmail.
type Local struct{}

func (Local) Name() string { return "google" }

func (Local) Verify(ctx context.Context, credential string) (Identity, error) {
	if credential == "" {
		return Dev{}.Verify(ctx, credential)
	}
	return Payload{}.Verify(ctx, credential)
}
