// Package shatter implements the shatter effect: a source image is cut into
// triangles that hold still for a short lead-in and then fly apart under
// gravity while spinning.
//
// # Pieces
//
// [Generate] places points along the four image edges plus a number of
// random interior points and triangulates them (fogleman/delaunay). Every
// triangle remembers its rest vertices and rest centroid, and is given an
// outward velocity from the image center scaled by the spread option, plus
// a little random jitter and spin.
//
// # Simulation
//
// [Step] advances one triangle by dt using semi-implicit Euler: gravity is
// added to the vertical velocity first and the updated velocity moves the
// centroid. Vertices are translated by the centroid delta; rotation is only
// applied when drawing.
//
// # Rendering
//
// [Renderer] implements [effect.Renderer]. Frames before [DefaultDelayFrames]
// show the untouched source; later frames draw every triangle through
// [DrawTriangle] and then step the simulation. All randomness is consumed
// while creating the [Context], so [Context.Reset] followed by a replay is
// bit-identical to the original run.
package shatter
