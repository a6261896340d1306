// Package firestore implements the task store against Google Cloud Firestore.
//
// Tasks live in a single collection (default "todos") with one document
// per task. The document schema matches what earlier versions of the
// product wrote, so existing collections keep working:
//
//	userName  string  owner display name
//	text      string  task description
//	date      string  calendar date, YYYY-MM-DD
//	completed bool    completion flag
//
// Document IDs are assigned by Firestore and surface as Task.ID.
//
// # Consistency
//
// No transactions are used. Every operation is a single-document read or
// write; concurrent writers are reconciled by Firestore's own
// last-write-wins behavior and by clients re-fetching the collection.
//
// # Authentication
//
// The client uses Application Default Credentials, or a service account
// key file when Config.CredentialsFile is set.
package firestore
