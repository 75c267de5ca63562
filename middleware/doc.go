// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Each request gets a request_id, taken from X-Request-ID if
the caller sent one, otherwise a fresh UUID, and echoed back in the
response header.

# CORS Middleware

Enable cross-origin requests for the browser client:

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin, mux),
	}

Credentials are allowed so the User cookie travels with requests. An
empty origin echoes the request's Origin header.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid format")

Error bodies have the shape {"error": "..."}.

Parse JSON request bodies:

	var req models.CreateSubjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP; used in request logs.
*/
package middleware
