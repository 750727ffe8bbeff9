// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PlanetVertexShader curves the clipmap grid onto the planet sphere.
//
//go:embed planet.vert
var PlanetVertexShader string

// PlanetFragmentShader tints each clipmap level.
//
//go:embed planet.frag
var PlanetFragmentShader string
