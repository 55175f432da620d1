// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires HTTP routes to handlers.

Uses Go 1.22 ServeMux method patterns ("POST /polls/{id}/votes"); path
parameters come out via r.PathValue. Public routes (voting, poll state,
contact form, the event stream) need no credentials; /admin routes check
X-Admin-Key inside the handlers. CORS and panic recovery wrap the whole
mux in main.
*/
package router
