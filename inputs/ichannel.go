package inputs

// IChannel defines the contract for a texture input bound to a sampler unit.
type IChannel interface {
	// GetTextureID returns the texture object that should be bound.
	GetTextureID() uint32

	// ChannelRes returns the resolution of the input channel as a vec3.
	ChannelRes() [3]float32

	// Destroy releases any resources held by the channel.
	Destroy()

	// GetSamplerType returns the GLSL sampler type (e.g., "sampler2D").
	GetSamplerType() string
}
