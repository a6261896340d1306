// Package server is the HTTP surface of taskboard.
//
// The board server renders the shared task list as server-side HTML and
// maps form posts onto board controller operations, with one controller
// per signed-in session. Mutating routes answer with a 303 redirect back
// to the board so a browser refresh never replays a write.
//
// The package also carries the Kubernetes health probes and a dedicated
// Prometheus metrics server so operational endpoints stay off the
// public port.
package server
