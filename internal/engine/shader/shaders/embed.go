// Package shaders provides the compiled-in GLSL sources used when no shader
// file is found on disk.
package shaders

import _ "embed"

// ModelVertexShader transforms visual model vertices.
//
//go:embed model.vert
var ModelVertexShader string

// ModelFragmentShader applies ambient plus diffuse lighting to model colours.
//
//go:embed model.frag
var ModelFragmentShader string

// TextVertexShader places label quads.
//
//go:embed text.vert
var TextVertexShader string

// TextFragmentShader samples the glyph coverage texture.
//
//go:embed text.frag
var TextFragmentShader string

// Default file names looked up before falling back to the embedded sources.
const (
	ModelVertexFile   = "model.vert"
	ModelFragmentFile = "model.frag"
	TextVertexFile    = "text.vert"
	TextFragmentFile  = "text.frag"
)
