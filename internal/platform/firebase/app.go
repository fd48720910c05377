// Package firebase builds the Firebase Admin clients the server depends on.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ErrNoFirestore is returned by PingFirestore when no Firestore client was opened.
var ErrNoFirestore = errors.New("firestore client not initialized")

// Options selects the project and which clients to open. Firestore is only
// needed when profiles and page data live there.
type Options struct {
	ProjectID       string
	CredentialsFile string
	Firestore       bool
}

// Clients groups the initialized clients. Firestore is nil unless requested.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// NewClients initializes the Firebase app and its clients.
func NewClients(ctx context.Context, opts Options) (*Clients, error) {
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		creds, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		clientOpts = append(clientOpts, option.WithCredentialsJSON(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: opts.ProjectID}, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	clients := &Clients{}
	if clients.Auth, err = app.Auth(ctx); err != nil {
		return nil, fmt.Errorf("init auth client: %w", err)
	}
	if opts.Firestore {
		if clients.Firestore, err = app.Firestore(ctx); err != nil {
			return nil, fmt.Errorf("init firestore client: %w", err)
		}
	}
	return clients, nil
}

// Close releases the Firestore connection if one was opened.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}

// PingFirestore reads at most one document from collection to confirm
// Firestore answers. An empty collection is healthy.
func (c *Clients) PingFirestore(ctx context.Context, collection string) error {
	if c == nil || c.Firestore == nil {
		return ErrNoFirestore
	}
	it := c.Firestore.Collection(collection).Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}
