package firestore

import (
	"errors"

	cloudfirestore "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"taskboard/internal/store"
)

// toTask converts a Firestore document to our Task type.
// Documents written by other clients may carry missing or oddly typed
// fields; conversion is lenient and never panics.
func toTask(id string, data map[string]interface{}) store.Task {
	result := store.Task{
		ID: id,
	}

	if data == nil {
		return result
	}

	if owner, ok := data[fieldOwner].(string); ok {
		result.Owner = owner
	}
	if text, ok := data[fieldText].(string); ok {
		result.Text = text
	}
	if date, ok := data[fieldDate].(string); ok {
		result.Date = date
	}
	if completed, ok := data[fieldCompleted].(bool); ok {
		result.Completed = completed
	}

	return result
}

// toUpdates converts a partial Fields value to Firestore update operations.
func toUpdates(fields store.Fields) []cloudfirestore.Update {
	var updates []cloudfirestore.Update

	if fields.Text != nil {
		updates = append(updates, cloudfirestore.Update{Path: fieldText, Value: *fields.Text})
	}
	if fields.Date != nil {
		updates = append(updates, cloudfirestore.Update{Path: fieldDate, Value: *fields.Date})
	}
	if fields.Completed != nil {
		updates = append(updates, cloudfirestore.Update{Path: fieldCompleted, Value: *fields.Completed})
	}

	return updates
}

// mapError translates a Firestore/gRPC failure into the store taxonomy.
// The original error stays in the chain for logging.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return errors.Join(store.ErrUnavailable, err)
	case codes.NotFound:
		return errors.Join(store.ErrNotFound, err)
	case codes.PermissionDenied, codes.Unauthenticated, codes.InvalidArgument,
		codes.FailedPrecondition, codes.ResourceExhausted, codes.Aborted:
		return errors.Join(store.ErrWriteRejected, err)
	}

	return err
}
