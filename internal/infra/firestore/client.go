package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gcfirestore "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// NewClient opens a Firestore client. projectID overrides the project from
// the credential when set.
func NewClient(ctx context.Context, account ServiceAccount, projectID string) (*gcfirestore.Client, error) {
	project := strings.TrimSpace(projectID)
	if project == "" {
		project = account.ProjectID
	}
	if project == "" {
		return nil, errors.New("firestore project id is required")
	}

	client, err := gcfirestore.NewClient(ctx, project, option.WithCredentialsJSON(account.Raw))
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return client, nil
}
