// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

/*
Package services provides suture.Service wrappers for server components.

Each wrapper turns a component lifecycle into suture's context-aware
Serve(ctx) error and implements fmt.Stringer so supervisor events name it.

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine;
when the context is canceled the server is shut down gracefully within the
configured timeout.

CacheJanitorService periodically drops expired entries from the
recommendation result cache so memory is released even for keys that are
never requested again.
*/
package services
