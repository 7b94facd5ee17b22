package generator

// ImageOutput は応答から取り出した最初の画像パーツです。
type ImageOutput struct {
	Data     []byte
	MimeType string
}
