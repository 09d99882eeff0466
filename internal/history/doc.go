// Package history records alignment runs in a SQLite database.
//
// Each run gets a UUID when it starts and is finished with a status from
// services.RunStatus plus line counts and any error text, so operators can
// list recent runs and find the ones that need review. The database runs in
// WAL mode and retries briefly when another process holds the write lock.
package history
