package parrot

// ShaderSource is the source of a shader module: either WGSL text or a
// precompiled SPIR-V blob. Exactly one of the two constructors should be
// used. WGSL sources must define the entry points vs_main and fs_main.
type ShaderSource struct {
	wgsl  string
	spirv []byte
}

// WGSL wraps inline WGSL source text.
func WGSL(src string) ShaderSource {
	return ShaderSource{wgsl: src}
}

// SPIRV wraps a precompiled SPIR-V binary.
func SPIRV(blob []byte) ShaderSource {
	return ShaderSource{spirv: blob}
}

// IsWGSL reports whether the source is WGSL text.
func (s ShaderSource) IsWGSL() bool {
	return s.wgsl != ""
}
