package imageio

import (
	"image"

	"github.com/nfnt/resize"
)

// ToTensorMeanStd resizes img to size x size and converts it to a planar CHW
// float32 tensor, normalizing each [0,1] channel value as (v - mean) / std.
// This is the native checkpoint's training-time pipeline.
func ToTensorMeanStd(img image.Image, size int, mean, std [3]float32) []float32 {
	resized := resize.Resize(uint(size), uint(size), img, resize.Bilinear)

	data := make([]float32, 3*size*size)
	plane := size * size
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			idx := y*size + x
			data[idx] = (float32(r)/65535.0 - mean[0]) / std[0]
			data[plane+idx] = (float32(g)/65535.0 - mean[1]) / std[1]
			data[2*plane+idx] = (float32(b)/65535.0 - mean[2]) / std[2]
		}
	}
	return data
}

// ToTensorScaleBias resizes img and converts raw 0-255 channel values with
// the deployment parameterization v*scale + bias, the form the converted
// model's embedded preprocessing is expressed in.
func ToTensorScaleBias(img image.Image, size int, scale, bias [3]float32) []float32 {
	resized := resize.Resize(uint(size), uint(size), img, resize.Bilinear)

	data := make([]float32, 3*size*size)
	plane := size * size
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			idx := y*size + x
			// RGBA scales 8-bit channels by 0x101; dividing by 257
			// recovers the raw byte value.
			data[idx] = float32(r)/257.0*scale[0] + bias[0]
			data[plane+idx] = float32(g)/257.0*scale[1] + bias[1]
			data[2*plane+idx] = float32(b)/257.0*scale[2] + bias[2]
		}
	}
	return data
}
