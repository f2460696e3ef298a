/*
DESCRIPTION
  frame.go defines the decoded picture buffer: three row-major 8-bit
  sample planes (luma, and 2x2-downsampled chroma b/r) shared by the
  gather, IDCT write-back, deblocking, and YUV conversion stages.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package h263dec

// Frame holds one fully decoded picture's sample planes, row-major
// (x + y*samplesPerRow) in each plane. Width and Height are always
// multiples of 16 (the macroblock size); the chroma planes are half that
// size in each dimension.
type Frame struct {
	Width, Height int

	Luma    []byte
	ChromaB []byte
	ChromaR []byte
}

// NewFrame allocates a zeroed Frame for a picture of the given luma pixel
// dimensions, rounding up to whole macroblocks.
func NewFrame(width, height int) *Frame {
	width = (width + 15) &^ 15
	height = (height + 15) &^ 15
	cw, ch := width/2, height/2
	return &Frame{
		Width:   width,
		Height:  height,
		Luma:    make([]byte, width*height),
		ChromaB: make([]byte, cw*ch),
		ChromaR: make([]byte, cw*ch),
	}
}

// LumaSamplesPerRow returns the luma plane's row stride.
func (f *Frame) LumaSamplesPerRow() int { return f.Width }

// ChromaSamplesPerRow returns the chroma planes' shared row stride.
func (f *Frame) ChromaSamplesPerRow() int { return f.Width / 2 }
