package firestore

import (
	"context"
	"fmt"

	cloudfirestore "cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"taskboard/internal/store"
)

// DefaultCollection is the Firestore collection holding task documents.
const DefaultCollection = "todos"

// Document field names. These match the schema written by earlier versions
// of the product, so existing collections keep working.
const (
	fieldOwner     = "userName"
	fieldText      = "text"
	fieldDate      = "date"
	fieldCompleted = "completed"
)

// Config holds the settings for connecting to Firestore.
type Config struct {
	// ProjectID is the Google Cloud project hosting the database.
	ProjectID string

	// Collection is the collection name. Defaults to DefaultCollection.
	Collection string

	// CredentialsFile is an optional path to a service account key.
	// When empty, Application Default Credentials are used.
	CredentialsFile string
}

// Client implements store.Store against Google Cloud Firestore.
type Client struct {
	fs         *cloudfirestore.Client
	collection string
}

// NewClient creates a Firestore-backed task store.
func NewClient(ctx context.Context, config Config) (*Client, error) {
	if config.ProjectID == "" {
		return nil, fmt.Errorf("firestore project ID is required")
	}
	if config.Collection == "" {
		config.Collection = DefaultCollection
	}

	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	fs, err := cloudfirestore.NewClient(ctx, config.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &Client{
		fs:         fs,
		collection: config.Collection,
	}, nil
}

// Close releases the underlying Firestore connection.
func (c *Client) Close() error {
	return c.fs.Close()
}

// ListTasks implements store.Store.
func (c *Client) ListTasks(ctx context.Context, filter store.Filter) ([]store.Task, error) {
	query := c.fs.Collection(c.collection).Query
	if filter.Owner != "" {
		query = query.Where(fieldOwner, "==", filter.Owner)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", mapError(err))
	}

	var result []store.Task
	for _, doc := range docs {
		result = append(result, toTask(doc.Ref.ID, doc.Data()))
	}

	return result, nil
}

// CreateTask implements store.Store.
func (c *Client) CreateTask(ctx context.Context, input store.TaskInput) (string, error) {
	ref, _, err := c.fs.Collection(c.collection).Add(ctx, map[string]interface{}{
		fieldOwner:     input.Owner,
		fieldText:      input.Text,
		fieldDate:      input.Date,
		fieldCompleted: input.Completed,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", mapError(err))
	}

	return ref.ID, nil
}

// UpdateTask implements store.Store.
func (c *Client) UpdateTask(ctx context.Context, id string, fields store.Fields) error {
	updates := toUpdates(fields)
	if len(updates) == 0 {
		return nil
	}

	_, err := c.fs.Collection(c.collection).Doc(id).Update(ctx, updates)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", id, mapError(err))
	}

	return nil
}

// DeleteTask implements store.Store.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.fs.Collection(c.collection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, mapError(err))
	}

	return nil
}
