// Package handler adapts typed request handlers to net/http.
//
// Wrap binds the request into the handler's request type (query parameters
// via binder.Query() unless other binders are configured), calls the handler
// and renders its Response. Errors go to an ErrorHandler; NewErrorHandler
// logs them and renders JSON, turning *binder.BindingError into a 400 response
// with per-field details:
//
//	{"error":{"code":"validation_error","message":"failed to parse query parameters",
//	  "details":{"pageSize":"expected integer, got \"ten\""}}}
package handler
