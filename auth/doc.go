// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves the caller's identity from the User cookie.

# Identity

The client carries its user id in a plain cookie:

	Cookie: User=265123

Resolve looks that id up in the users table. A missing cookie and an
unknown id both yield ErrUnauthenticated. The cookie is not signed and
has no server-side expiry.

# Handler Wrappers

Handlers that need a caller take it as an explicit parameter:

	func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request, user models.User)

	mux.HandleFunc("GET /api/history", auth.RequireUser(s, h.List))
	mux.HandleFunc("POST /api/subjects", auth.RequireAdmin(s, h.Create))

RequireUser answers 401 when no user resolves. RequireAdmin additionally
answers 403 for non-admin roles.

# Slugs

Subject slugs are derived from names the same way the admin dashboard
does it:

	auth.Slugify("Computer Science") // "computer-science"
	auth.ValidSlug("computer-science") // true
*/
package auth
