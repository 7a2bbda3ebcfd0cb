// Package controller implements the two console page controllers.
//
// [ListController] owns the paginated, filtered and sorted view of the model
// collection. [DetailController] owns a single model and its versions. Both
// follow the same reactive wiring: a user interaction mutates the persisted
// view settings first, which triggers exactly one re-fetch; a completed
// fetch publishes a snapshot to subscribers. Rendering is left to the cli
// package, which subscribes to snapshots and draws them.
//
// Fetches carry a sequence number. A response whose sequence is no longer
// the newest is dropped, so a slow early request can never overwrite the
// result of a later one.
package controller
