package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/raushankrgupta/closetly/config"
	"google.golang.org/api/option"
)

const faceModel = "gemini-1.5-flash"

const facePrompt = `
Locate the most prominent human face in this photo.
Respond with JSON only: {"found": true|false, "box": [ymin, xmin, ymax, xmax]}
where the box coordinates are normalised to 0-1000.
If there is no face, respond {"found": false, "box": []}.
`

type faceResponse struct {
	Found bool      `json:"found"`
	Box   []float64 `json:"box"`
}

// LocateFaceBox asks Gemini for the face bounding box of an image and returns
// it as fractions (x0, y0, x1, y1) of the image size
func LocateFaceBox(ctx context.Context, imgData []byte, format string) ([4]float64, bool, error) {
	var box [4]float64
	if config.GeminiAPIKey == "" {
		return box, false, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return box, false, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(faceModel)
	model.ResponseMIMEType = "application/json"

	if format == "" {
		format = "jpeg"
	}
	resp, err := model.GenerateContent(ctx, genai.Text(facePrompt), genai.ImageData(format, imgData))
	if err != nil {
		return box, false, fmt.Errorf("failed to generate content: %v", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return box, false, fmt.Errorf("no content generated")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return ParseFaceBox(text.String())
}

// ParseFaceBox decodes the model's JSON answer into a fractional box
func ParseFaceBox(answer string) ([4]float64, bool, error) {
	var box [4]float64
	answer = strings.TrimSpace(answer)
	answer = strings.TrimPrefix(answer, "```json")
	answer = strings.TrimSuffix(strings.TrimPrefix(answer, "```"), "```")

	var fr faceResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(answer)), &fr); err != nil {
		return box, false, fmt.Errorf("failed to parse face box: %v", err)
	}
	if !fr.Found {
		return box, false, nil
	}
	if len(fr.Box) != 4 {
		return box, false, fmt.Errorf("face box has %d coordinates", len(fr.Box))
	}

	ymin, xmin, ymax, xmax := fr.Box[0]/1000, fr.Box[1]/1000, fr.Box[2]/1000, fr.Box[3]/1000
	if xmin >= xmax || ymin >= ymax || xmin < 0 || ymin < 0 || xmax > 1 || ymax > 1 {
		return box, false, fmt.Errorf("face box out of range: %v", fr.Box)
	}
	return [4]float64{xmin, ymin, xmax, ymax}, true, nil
}
