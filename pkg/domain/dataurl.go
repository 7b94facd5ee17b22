package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DefaultMimeType は応答に MIME タイプが無かった場合に使います。
const DefaultMimeType = "image/png"

const dataURLPrefix = "data:"

var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// EncodeDataURL は画像データを追加の取得なしで描画できる data URL に変換します。
func EncodeDataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	return dataURLPrefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL は EncodeDataURL の逆変換です。
func DecodeDataURL(url string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(url, dataURLPrefix)
	if !ok {
		return "", nil, fmt.Errorf("data URL ではありません")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URL にペイロードがありません")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("base64 以外のエンコーディングには対応していません: %s", meta)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("base64 デコード失敗: %w", err)
	}
	return mimeType, data, nil
}

// DownloadFileName は ID と MIME タイプから決定的なファイル名を作ります。
func DownloadFileName(id, mimeType string) string {
	ext, ok := extensions[mimeType]
	if !ok {
		ext = "png"
	}
	return fmt.Sprintf("gemini-%s.%s", id, ext)
}
