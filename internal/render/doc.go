// Package render rasterizes drawings into PNG previews.
//
// Drawing coordinates are y-up. The canvas is painted y-down and flipped
// vertically before encoding, so the preview shows the drawing the right way
// up. Pixel coordinates in the result follow the usual image convention:
// (0,0) is the top-left corner.
//
// # Colors
//
// Each layer receives an evenly spaced hue, in order of first appearance.
// Detected rooms are filled with a light tint mixed in CIE Lab space so the
// tint stays perceptually even across hues. Room numbers are stamped with a
// small built-in digit font.
//
// # Quality
//
// Previews are painted at twice the requested size and downsampled with a
// Lanczos filter, which smooths diagonal lines and circles.
package render
