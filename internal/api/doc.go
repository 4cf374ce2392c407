// Package api exposes the user, task and statistics services over HTTP.
// Handlers decode and validate requests, read the authenticated user from
// the context, and write the {success, message, data} envelope. Errors are
// classified once in MapErrorToStatusCode and GetSafeErrorMessage.
package api
