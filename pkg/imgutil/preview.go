package imgutil

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
)

const (
	DefaultPreviewQuality = 75
	previewMimeType       = "image/jpeg"
)

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に再エンコードします。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Preview は履歴一覧用の軽量な画像を返します。
// デコードできない形式や、圧縮しても小さくならない場合は元データをそのまま返します。
func Preview(data []byte, mimeType string, quality int) ([]byte, string) {
	if quality <= 0 || quality > 100 {
		quality = DefaultPreviewQuality
	}
	compressed, err := CompressToJPEG(data, quality)
	if err != nil || len(compressed) >= len(data) {
		return data, mimeType
	}
	return compressed, previewMimeType
}
