package images

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultImagenModel renders book covers well at portrait ratios.
const DefaultImagenModel = "imagen-3.0-generate-002"

// Imagen generates images through the Gemini API.
type Imagen struct {
	client *genai.Client
	model  string
}

func NewImagen(apiKey string, model string) (*Imagen, error) {
	if model == "" {
		model = DefaultImagenModel
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Imagen{
		client: client,
		model:  model,
	}, nil
}

// Generate renders one portrait image for prompt and returns its encoded
// bytes as the API produced them, PNG unless the model says otherwise.
func (g *Imagen) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "3:4",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, errors.New("no image returned")
	}
	data := resp.GeneratedImages[0].Image.ImageBytes
	if len(data) == 0 {
		return nil, errors.New("empty image returned")
	}
	return data, nil
}
