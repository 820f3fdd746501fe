package faces

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/Ugar78/telegram-bot-idrnd/internal/domain/model"
)

const (
	minFaceSize   = 20
	shiftFactor   = 0.1
	scaleFactor   = 1.1
	clusterRadius = 0.2
	minQuality    = 5.0
)

// Detector finds faces in still images using a pigo cascade classifier.
type Detector struct {
	classifier *pigo.Pigo
}

func NewDetector(cascadePath string) (*Detector, error) {
	cascade, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("read face cascade: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpack face cascade: %w", err)
	}

	return &Detector{classifier: classifier}, nil
}

// Detect returns every face region found in the image. An empty slice
// means no face.
func (d *Detector) Detect(imageBytes []byte) ([]model.FaceRegion, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	pixels := pigo.RgbToGrayscale(img)
	bounds := img.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()

	params := pigo.CascadeParams{
		MinSize:     minFaceSize,
		MaxSize:     max(rows, cols),
		ShiftFactor: shiftFactor,
		ScaleFactor: scaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	detections := d.classifier.RunCascade(params, 0.0)
	detections = d.classifier.ClusterDetections(detections, clusterRadius)

	regions := make([]model.FaceRegion, 0, len(detections))
	for _, det := range detections {
		if det.Q < minQuality {
			continue
		}
		regions = append(regions, model.FaceRegion{
			Row:     det.Row,
			Col:     det.Col,
			Scale:   det.Scale,
			Quality: det.Q,
		})
	}

	return regions, nil
}
