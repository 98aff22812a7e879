// Package binder turns keyframe envelopes into keyframe insertion requests
// for a set of scene objects.
//
// Binding is pure: [Bind] reads envelopes and a timeline and returns the
// complete ordered request list (object-major, then keyframe, then the
// channel order of the preset). Applying the requests to a scene is the
// caller's job.
//
// A [Preset] decides which envelopes it needs and how an object's
// transform follows them:
//
//	bounce  location z follows the low band
//	orbit   objects circle the origin, height follows the low band
//	tumble  rotation x follows the high band, rotation z the low band
//	dance   orbit and tumble combined
package binder
