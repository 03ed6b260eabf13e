// Package quarkgl provides the small, predictable math and software 3D layer used
// by the effect views.
//
// It covers three things:
//
//   - scalar/vector helpers and smoothstep easing (Ease, Lerp),
//   - 2D affine (Mat3) and 3D (Mat4) column-major matrices matching the layout
//     shader uniforms expect,
//   - a fixed-pipeline software renderer for wireframe and flat meshes.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Clipping → Rasterization → Target.
//
// The renderer draws into a caller-provided Target and avoids allocations in
// the render hot path. It is not a GPU abstraction; shader-driven views go
// through fx/gfx instead.
package quarkgl
