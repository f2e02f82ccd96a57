// Package animate splices independently encoded single-image GIFs into one
// looping animation.
//
// Source frames are copied segment by segment. The first frame supplies the
// logical screen descriptor and global color table; every frame gets a fresh
// graphics control extension carrying its delay, the shared disposal method
// and, when a transparent color matches, a transparency index. A frame whose
// color table equals the global one is emitted without it.
//
//	out, err := animate.Assemble(frames, delays, animate.DefaultConfig())
//
// Assembly is all or nothing: any validation or structural failure returns a
// *gif.FrameError naming the offending input and no output.
package animate
