// Package shaders provides the default GLSL sources for scene nodes.
//
// The same files are read from disk at start-up when present, so they can be
// edited without rebuilding; the embedded copies are the fallback.
package shaders

import _ "embed"

// VertexShader is the default node vertex shader.
//
//go:embed vert.glsl
var VertexShader string

// FragmentShader is the default node fragment shader.
//
//go:embed frag.glsl
var FragmentShader string
