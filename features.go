package vc4vk

// PhysicalDeviceFeatures is the negotiable feature set of the fixed GPU
// target. Every field is a single boolean capability; a device-creation
// request may only enable bits present in the supported set below.
type PhysicalDeviceFeatures struct {
	RobustBufferAccess             bool
	FullDrawIndexUint32            bool
	ImageCubeArray                 bool
	IndependentBlend               bool
	GeometryShader                 bool
	TessellationShader             bool
	SampleRateShading              bool
	DualSrcBlend                   bool
	LogicOp                        bool
	MultiDrawIndirect              bool
	DepthClamp                     bool
	DepthBiasClamp                 bool
	FillModeNonSolid               bool
	WideLines                      bool
	LargePoints                    bool
	AlphaToOne                     bool
	MultiViewport                  bool
	SamplerAnisotropy              bool
	TextureCompressionETC2         bool
	TextureCompressionASTC         bool
	TextureCompressionBC           bool
	OcclusionQueryPrecise          bool
	VertexPipelineStoresAndAtomics bool
	FragmentStoresAndAtomics       bool
	ShaderClipDistance             bool
	ShaderCullDistance             bool
}

// supportedFeatures is what the VideoCore IV actually offers. Immutable
// after process start.
var supportedFeatures = PhysicalDeviceFeatures{
	FullDrawIndexUint32:   true,
	LogicOp:               true,
	WideLines:             true,
	LargePoints:           true,
	AlphaToOne:            true,
	OcclusionQueryPrecise: true,
}

// featureIndex enumerates every feature bit with a stable name and an
// accessor, so validation and formatting never fall out of sync with the
// struct definition.
var featureIndex = []struct {
	name string
	get  func(*PhysicalDeviceFeatures) bool
}{
	{"robustBufferAccess", func(f *PhysicalDeviceFeatures) bool { return f.RobustBufferAccess }},
	{"fullDrawIndexUint32", func(f *PhysicalDeviceFeatures) bool { return f.FullDrawIndexUint32 }},
	{"imageCubeArray", func(f *PhysicalDeviceFeatures) bool { return f.ImageCubeArray }},
	{"independentBlend", func(f *PhysicalDeviceFeatures) bool { return f.IndependentBlend }},
	{"geometryShader", func(f *PhysicalDeviceFeatures) bool { return f.GeometryShader }},
	{"tessellationShader", func(f *PhysicalDeviceFeatures) bool { return f.TessellationShader }},
	{"sampleRateShading", func(f *PhysicalDeviceFeatures) bool { return f.SampleRateShading }},
	{"dualSrcBlend", func(f *PhysicalDeviceFeatures) bool { return f.DualSrcBlend }},
	{"logicOp", func(f *PhysicalDeviceFeatures) bool { return f.LogicOp }},
	{"multiDrawIndirect", func(f *PhysicalDeviceFeatures) bool { return f.MultiDrawIndirect }},
	{"depthClamp", func(f *PhysicalDeviceFeatures) bool { return f.DepthClamp }},
	{"depthBiasClamp", func(f *PhysicalDeviceFeatures) bool { return f.DepthBiasClamp }},
	{"fillModeNonSolid", func(f *PhysicalDeviceFeatures) bool { return f.FillModeNonSolid }},
	{"wideLines", func(f *PhysicalDeviceFeatures) bool { return f.WideLines }},
	{"largePoints", func(f *PhysicalDeviceFeatures) bool { return f.LargePoints }},
	{"alphaToOne", func(f *PhysicalDeviceFeatures) bool { return f.AlphaToOne }},
	{"multiViewport", func(f *PhysicalDeviceFeatures) bool { return f.MultiViewport }},
	{"samplerAnisotropy", func(f *PhysicalDeviceFeatures) bool { return f.SamplerAnisotropy }},
	{"textureCompressionETC2", func(f *PhysicalDeviceFeatures) bool { return f.TextureCompressionETC2 }},
	{"textureCompressionASTC", func(f *PhysicalDeviceFeatures) bool { return f.TextureCompressionASTC }},
	{"textureCompressionBC", func(f *PhysicalDeviceFeatures) bool { return f.TextureCompressionBC }},
	{"occlusionQueryPrecise", func(f *PhysicalDeviceFeatures) bool { return f.OcclusionQueryPrecise }},
	{"vertexPipelineStoresAndAtomics", func(f *PhysicalDeviceFeatures) bool { return f.VertexPipelineStoresAndAtomics }},
	{"fragmentStoresAndAtomics", func(f *PhysicalDeviceFeatures) bool { return f.FragmentStoresAndAtomics }},
	{"shaderClipDistance", func(f *PhysicalDeviceFeatures) bool { return f.ShaderClipDistance }},
	{"shaderCullDistance", func(f *PhysicalDeviceFeatures) bool { return f.ShaderCullDistance }},
}

// validateFeatures returns the name of the first requested feature bit that
// the hardware does not support, or "".
func validateFeatures(requested *PhysicalDeviceFeatures) string {
	for _, f := range featureIndex {
		if f.get(requested) && !f.get(&supportedFeatures) {
			return f.name
		}
	}
	return ""
}
