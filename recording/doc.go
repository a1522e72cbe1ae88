// Package recording provides a Surface that records drawing calls.
//
// A Recorder implements surface.Surface. Every call is stored as a typed
// command together with the transform in effect after the call, so tests
// and traces can check where drawing happened without comparing pixels.
// A Recorder may wrap another Surface, forwarding every call to it.
//
// Design follows Cairo's approach of typed command structs for
// inspectability and debuggability.
//
// # Example
//
//	rec := recording.NewRecorder(200, 100)
//	rec.Scale(2, 2)
//	rec.Rectangle(0, 0, 10, 10)
//	rec.Fill()
//
//	for _, op := range rec.Finish().Find(recording.CmdFill) {
//	    fmt.Println(op.Transform) // [2 0 0; 0 2 0]
//	}
//
// Recordings can be replayed onto any surface with Playback.
package recording
