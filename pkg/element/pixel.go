package element

// RGBPixel is a fixed three-channel color tuple with 8-bit components.
// Pixels are plain values: reads copy, so an image's stored pixels cannot
// be mutated through an accessor.
type RGBPixel struct {
	R uint8 // red component (0-255)
	G uint8 // green component (0-255)
	B uint8 // blue component (0-255)
}

// RGBAPixel is a fixed four-channel color tuple with 8-bit components.
// Alpha is opacity: 0 = fully transparent, 255 = fully opaque.
type RGBAPixel struct {
	R uint8 // red component (0-255)
	G uint8 // green component (0-255)
	B uint8 // blue component (0-255)
	A uint8 // alpha component (0-255)
}

// GrayAlphaPixel is a luminance value paired with an alpha channel.
type GrayAlphaPixel struct {
	V uint8 // luminance (0-255)
	A uint8 // alpha component (0-255)
}

// BinaryAlphaPixel is a set/unset bit paired with an alpha channel.
type BinaryAlphaPixel struct {
	V bool  // set or unset
	A uint8 // alpha component (0-255)
}
