/*
DESCRIPTION
  yuv.go converts a decoded picture's planar YCbCr 4:2:0 samples into
  packed RGBA8888, as the final postprocessing stage after motion
  compensation, IDCT, and deblocking.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package yuv converts H.263 YCbCr 4:2:0 sample planes into RGBA, using the
// BT.601 16-235/16-240 range coefficients and nearest-neighbour chroma
// sampling that matches Flash Player's own behaviour, rather than the
// bilinear chroma interpolation some other BT.601 implementations use.
package yuv

import (
	"image"
	"image/color"
)

// Fixed-point BT.601 coefficients (16.16), per Figure in ITU-T Rec. H.263
// Annex on colour conversion: Y is remapped from [16,235] and Cb/Cr from
// [16,240], both to full 8-bit range, ahead of the matrix multiply below.
const (
	coeffYToGray = 76309
	coeffCrToR   = 104597
	coeffCrToG   = 53279
	coeffCbToG   = 25675
	coeffCbToB   = 132201
	fixedPointHalf = 1 << 15
)

// luts holds the per-channel contribution of every possible 8-bit Y/Cb/Cr
// sample, precomputed once so Convert's inner loop is pure table lookups
// and adds, following original_source/yuv/src/bt601.rs's LUT-precompute
// architecture (the coefficients themselves differ: that source targets a
// 12.4 fixed-point SIMD kernel with bilinear chroma; this one targets the
// 16.16 scalar kernel and nearest-neighbour chroma spec.md calls for).
type luts struct {
	yToGray [256]int32
	crToR   [256]int32
	crToG   [256]int32
	cbToG   [256]int32
	cbToB   [256]int32
}

var tables = newLUTs()

func newLUTs() *luts {
	var l luts
	for i := 0; i < 256; i++ {
		l.yToGray[i] = int32(i-16) * coeffYToGray
		l.crToR[i] = int32(i-128) * coeffCrToR
		l.crToG[i] = -int32(i-128) * coeffCrToG
		l.cbToG[i] = -int32(i-128) * coeffCbToG
		l.cbToB[i] = int32(i-128) * coeffCbToB
	}
	return &l
}

func clip8(v int32) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// Pixel converts one Y/Cb/Cr sample triple to RGB using the precomputed
// BT.601 tables. Alpha is always opaque and is not part of this function's
// contract; callers needing RGBA call Convert instead.
func Pixel(y, cb, cr uint8) (r, g, b uint8) {
	gray := tables.yToGray[y]
	r = clip8((gray + tables.crToR[cr] + fixedPointHalf) >> 16)
	g = clip8((gray + tables.crToG[cr] + tables.cbToG[cb] + fixedPointHalf) >> 16)
	b = clip8((gray + tables.cbToB[cb] + fixedPointHalf) >> 16)
	return r, g, b
}

// Convert converts planar YCbCr 4:2:0 samples into packed RGBA8888. y is
// yWidth*yHeight samples; chromaB and chromaR are each brWidth*brHeight
// samples, where brWidth = ceil(yWidth/2) and brHeight = ceil(yHeight/2).
// Chroma is sampled nearest-neighbour: every 2x2 luma quad shares one
// chroma pair, matching Flash Player rather than interpolating.
func Convert(y, chromaB, chromaR []byte, yWidth, brWidth int) []byte {
	yHeight := len(y) / yWidth

	out := make([]byte, len(y)*4)
	for row := 0; row < yHeight; row++ {
		chromaRow := (row / 2) * brWidth
		for col := 0; col < yWidth; col++ {
			chromaIndex := chromaRow + col/2

			r, g, b := Pixel(y[row*yWidth+col], chromaB[chromaIndex], chromaR[chromaIndex])

			base := (row*yWidth + col) * 4
			out[base] = r
			out[base+1] = g
			out[base+2] = b
			out[base+3] = 255
		}
	}
	return out
}

// ConvertImage is the same conversion as Convert, but returns a standard
// library image.Image so callers that interoperate with this repository's
// other image-consuming tooling (golang.org/x/image included) don't need
// to know the raw packed RGBA8888 layout.
func ConvertImage(y, chromaB, chromaR []byte, yWidth, brWidth int) *image.NRGBA {
	yHeight := len(y) / yWidth
	img := image.NewNRGBA(image.Rect(0, 0, yWidth, yHeight))

	for row := 0; row < yHeight; row++ {
		chromaRow := (row / 2) * brWidth
		for col := 0; col < yWidth; col++ {
			chromaIndex := chromaRow + col/2
			r, g, b := Pixel(y[row*yWidth+col], chromaB[chromaIndex], chromaR[chromaIndex])
			img.SetNRGBA(col, row, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
