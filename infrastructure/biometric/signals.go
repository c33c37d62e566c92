package biometric

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	facescan_types "verifid.io/infrastructure/facescan/types"
)

// DefaultMatchThreshold is the embedding-distance cutoff for a face match.
// Tuned conservative to minimize false accepts.
const DefaultMatchThreshold = 0.45

func pointDistance(a facescan_types.Point, b facescan_types.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// EyeAspectRatio computes the EAR over 6 ordered eye landmarks
// (corner, two upper-lid, corner, two lower-lid). An open eye sits around
// 0.25-0.35, a closed eye at or below about 0.1. Returns 0 when the
// horizontal span is degenerate.
func EyeAspectRatio(eye []facescan_types.Point) float64 {
	if len(eye) != 6 {
		return 0
	}
	horizontal := pointDistance(eye[0], eye[3])
	if horizontal == 0 {
		return 0
	}
	return (pointDistance(eye[1], eye[5]) + pointDistance(eye[2], eye[4])) / (2 * horizontal)
}

// FrameEyeAspectRatio averages both eyes' EAR over a full 68-point landmark
// set.
func FrameEyeAspectRatio(landmarks []facescan_types.Point) float64 {
	if len(landmarks) < facescan_types.LandmarkCount {
		return 0
	}
	left := EyeAspectRatio(landmarks[facescan_types.LeftEyeStart:facescan_types.LeftEyeEnd])
	right := EyeAspectRatio(landmarks[facescan_types.RightEyeStart:facescan_types.RightEyeEnd])
	return (left + right) / 2
}

// HeadPose estimates yaw and pitch in degrees from landmark geometry.
// Negative yaw is a left turn. This is a coarse geometric approximation
// based on the nose-tip offset from the eye line, not a full 3-D pose
// solve; it is accurate enough to score deliberate head-turn challenges.
func HeadPose(landmarks []facescan_types.Point) (yaw float64, pitch float64) {
	if len(landmarks) < facescan_types.LandmarkCount {
		return 0, 0
	}
	noseTip := landmarks[facescan_types.NoseTipIndex]
	chin := landmarks[facescan_types.ChinIndex]
	leftCorner := landmarks[facescan_types.LeftEyeOuterCorner]
	rightCorner := landmarks[facescan_types.RightEyeOuterCorner]

	eyeCenter := facescan_types.Point{
		X: (leftCorner.X + rightCorner.X) / 2,
		Y: (leftCorner.Y + rightCorner.Y) / 2,
	}
	eyeCornerSpan := math.Abs(rightCorner.X - leftCorner.X)
	if eyeCornerSpan != 0 {
		yaw = (noseTip.X - eyeCenter.X) / eyeCornerSpan * 90
	}
	noseToChin := chin.Y - noseTip.Y
	if noseToChin != 0 {
		pitch = ((noseTip.Y-eyeCenter.Y)/noseToChin - 0.7) * 60
	}
	return yaw, pitch
}

// SmileProbability passes through the provider's "happy" expression score.
// No independent geometry is computed.
func SmileProbability(expressions map[string]float64) float64 {
	return expressions["happy"]
}

// FaceDistance is the Euclidean distance between two fixed-length face
// embeddings. Mismatched or empty embeddings are maximally distant.
func FaceDistance(a []float64, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.Inf(1)
	}
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// MatchScore maps an embedding distance to a [0,1] similarity score.
func MatchScore(distance float64) float64 {
	score := 1 - distance
	if score < 0 {
		return 0
	}
	return score
}

// TextureStats computes the global pixel-intensity standard deviation and
// the Laplacian variance of a greyscale image. Printed or re-photographed
// faces tend to score lower on both than natural skin texture.
func TextureStats(img *image.Gray) (stdDev float64, laplacianVariance float64) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return 0, 0
	}

	var sum, sumSq float64
	count := float64(width * height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := float64(img.GrayAt(x, y).Y)
			sum += v
			sumSq += v * v
		}
	}
	mean := sum / count
	variance := sumSq/count - mean*mean
	if variance < 0 {
		variance = 0
	}
	stdDev = math.Sqrt(variance)

	if width < 3 || height < 3 {
		return stdDev, 0
	}
	// discrete Laplacian 4*center - up - down - left - right over interior
	// pixels, then the variance of that derived field
	var lapSum, lapSumSq float64
	lapCount := 0
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			lap := 4*float64(img.GrayAt(x, y).Y) -
				float64(img.GrayAt(x, y-1).Y) -
				float64(img.GrayAt(x, y+1).Y) -
				float64(img.GrayAt(x-1, y).Y) -
				float64(img.GrayAt(x+1, y).Y)
			lapSum += lap
			lapSumSq += lap * lap
			lapCount++
		}
	}
	lapMean := lapSum / float64(lapCount)
	laplacianVariance = lapSumSq/float64(lapCount) - lapMean*lapMean
	if laplacianVariance < 0 {
		laplacianVariance = 0
	}
	return stdDev, laplacianVariance
}

// DetectMoire samples the middle horizontal scanline and computes normalized
// autocorrelation at lags 3..min(50, width/4). A peak above 0.95 flags a
// periodic pattern, the signature of a re-photographed screen.
func DetectMoire(img *image.Gray) (periodic bool, peakCorrelation float64) {
	bounds := img.Bounds()
	width := bounds.Dx()
	if width < 8 {
		return false, 0
	}
	row := make([]float64, width)
	y := bounds.Min.Y + bounds.Dy()/2
	for x := 0; x < width; x++ {
		row[x] = float64(img.GrayAt(bounds.Min.X+x, y).Y)
	}

	mean := 0.0
	for _, v := range row {
		mean += v
	}
	mean /= float64(width)
	variance := 0.0
	for _, v := range row {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(width)
	if variance == 0 {
		return false, 0
	}

	maxLag := width / 4
	if maxLag > 50 {
		maxLag = 50
	}
	for lag := 3; lag <= maxLag; lag++ {
		correlation := 0.0
		n := width - lag
		for i := 0; i < n; i++ {
			correlation += (row[i] - mean) * (row[i+lag] - mean)
		}
		correlation /= float64(n) * variance
		if correlation > peakCorrelation {
			peakCorrelation = correlation
		}
	}
	return peakCorrelation > 0.95, peakCorrelation
}

// DecodeGray decodes an image payload (png/jpeg/gif) into a greyscale frame
// using the standard luminance weights.
func DecodeGray(frame []byte) (*image.Gray, error) {
	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 256.0
			gray.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}
	return gray, nil
}
