// Package middleware groups the fiber middleware mounted by the serve command.
//
// rayid tags every request with an X-Ray-ID so the status and integrity handlers
// log under the same id. auth rejects requests without the configured API key;
// an empty key leaves the read-only API open.
package middleware
