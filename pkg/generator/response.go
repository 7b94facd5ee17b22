package generator

import (
	"fmt"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"google.golang.org/genai"
)

// parseToOutput は Gemini の応答から最初の画像パーツを取り出します。
// 2つ目以降の画像パーツとテキストパーツは無視します。
func parseToOutput(resp *genai.GenerateContentResponse) (*ImageOutput, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, domain.NewNoImageDataError(msgNoImageReturned)
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = domain.DefaultMimeType
			}
			return &ImageOutput{Data: part.InlineData.Data, MimeType: mimeType}, nil
		}
	}

	// 安全フィルター等によるブロックは理由を添える
	switch candidate.FinishReason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
	default:
		return nil, domain.NewNoImageDataError(fmt.Sprintf("%s (FinishReason: %s)", msgNoImageReturned, candidate.FinishReason))
	}

	return nil, domain.NewNoImageDataError(msgNoImageReturned)
}
