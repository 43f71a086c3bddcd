// Package client talks to the task tracker REST API on behalf of a signed-in
// user.
//
// # Overview
//
// HTTPClient.Do sends an authenticated request using the access token from a
// session.Store. When the server answers 401 it makes exactly one call to
// /api/refresh. On success only the stored access token is replaced and the
// original request is retried once; the retry's response is returned as is,
// even if it is another 401. On failure the stored session is cleared, the
// OnLogout hook fires and ErrSessionExpired is returned without a retry.
//
// Typed helpers (Register, Login, ListTasks, CreateTask, UpdateTask,
// DeleteTask, ListUsers, Me, Health, WatchTasks) wrap Do and decode the JSON
// bodies defined in package api.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrNotAuthenticated, ErrSessionExpired, ErrUnauthorized,
// ErrNotFound, ErrUnavailable. Other non-2xx answers come back as *APIError.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use, but concurrent requests that hit an
// expired access token each refresh independently.
package client
