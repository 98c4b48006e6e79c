// Package server provides HTTP routing, middleware, and the collection endpoints of the songrank service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps the whole mux in reverse order (last added executes innermost).
// The stack built by [NewRouter] is request id, request logging, panic recovery, then CORS.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns, so a non-GET request
// to a collection path receives 405.
//
// # Collection Endpoints
//
//	GET /getplaylist?playlistID=<id>         -> [models.VideoItem] array
//	GET /getbandcampalbum?albumURL=<url>     -> [models.AudioTrackItem] array
//	GET /health                              -> {"status":"ok","service":"songrank"}
//
// [CollectionHandler] holds the endpoint table and runs each request through validate, fetch,
// classify and write. Every failure is mapped by [shared.Classify]; classified errors are written
// as {"err": message}, except a missing parameter which is a bare 400.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
