package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// ImagePrompt asks the generator for an English image-generation prompt for
// a product. Stateless one-shot like AnalyzeVoucher; no chat session is
// involved. Falls back to a generic prompt string on any failure.
func ImagePrompt(ctx context.Context, gen Generator, productName string) string {
	instruction := `Act as an expert prompt engineer for AI image generators.
Create a precise, descriptive prompt in ENGLISH for the product: "` + productName + `".
If the product is CIGARETTES: describe a realistic cigarette pack with the brand name "` + productName + `" clearly on the box.
If the product is ALCOHOL/BEER: describe the bottle or can shape for this drink type, with the label text "` + productName + `".
VISUAL STYLE: professional product photography, 8k, sharp focus, neon/nightclub background blurred.
OUTPUT: return ONLY the English prompt string.`

	out, err := gen.Reply(ctx, "", instruction)
	if err != nil || strings.TrimSpace(out) == "" {
		if err != nil {
			zap.L().Warn("assistant: image prompt generation failed", zap.Error(err))
		}
		return productName + " bottle professional photography dark background"
	}
	return out
}
