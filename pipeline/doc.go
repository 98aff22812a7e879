// Package pipeline runs one audio file through decode, band filtering,
// envelope sampling, timeline placement and binding, and buffers the
// resulting keyframe plan.
//
// Nothing reaches a scene until [Commit] is called with a successful
// [Result]; a run that fails at any stage returns a [*StageError] and no
// plan. A silent band is not a failure: its envelope is all zeros and its
// role is listed in [Result.Silent].
package pipeline
