// Package formapi exposes a registration engine over HTTP.
//
// Routes:
//
//	GET    /state              current snapshot
//	PUT    /fields/{field}     update one field from datastar signals {"value": "...", "checked": true}
//	POST   /submit             submit the form (200, 422 when invalid, 502 when delivery fails)
//	DELETE /notification       dismiss the visible notification (204, 404 when nothing is visible)
//	GET    /events             stream snapshots as datastar signal patches
//
// JSON responses use the envelope {"data": ..., "error": {"code", "message", "details"}}.
// Requests made by datastar (Accept: text/event-stream) receive the new
// snapshot as a signal patch instead.
package formapi
