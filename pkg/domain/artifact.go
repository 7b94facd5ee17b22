package domain

import (
	"errors"
	"time"

	"github.com/samber/lo"
)

// AspectRatio は生成画像の縦横比です。定義済みの値以外は受け付けません。
type AspectRatio string

const (
	AspectSquare       AspectRatio = "1:1"
	AspectPortrait34   AspectRatio = "3:4"
	AspectLandscape43  AspectRatio = "4:3"
	AspectPortrait916  AspectRatio = "9:16"
	AspectLandscape169 AspectRatio = "16:9"
)

// フォームの初期値
const (
	DefaultAspectRatio = AspectSquare
	DefaultPrompt      = "a cat who is selling an apple on the road"
)

// AspectRatioOption はフォームに表示する選択肢です。
type AspectRatioOption struct {
	Value AspectRatio
	Label string
}

// AspectRatioOptions は表示順に並んだ全選択肢です。
var AspectRatioOptions = []AspectRatioOption{
	{Value: AspectSquare, Label: "Square (1:1)"},
	{Value: AspectLandscape169, Label: "Landscape (16:9)"},
	{Value: AspectPortrait916, Label: "Portrait (9:16)"},
	{Value: AspectPortrait34, Label: "Portrait (3:4)"},
	{Value: AspectLandscape43, Label: "Landscape (4:3)"},
}

var (
	// ErrEmptyPrompt は空白のみのプロンプトで生成しようとした場合のエラーです。
	ErrEmptyPrompt = errors.New("prompt must not be empty")
	// ErrInvalidAspectRatio は未定義の縦横比が渡された場合のエラーです。
	ErrInvalidAspectRatio = errors.New("unsupported aspect ratio")
)

// Valid は縦横比が定義済みの値かどうかを返します。
func (r AspectRatio) Valid() bool {
	return lo.ContainsBy(AspectRatioOptions, func(o AspectRatioOption) bool {
		return o.Value == r
	})
}

// ParseAspectRatio は文字列を AspectRatio に変換します。
func ParseAspectRatio(s string) (AspectRatio, error) {
	r := AspectRatio(s)
	if !r.Valid() {
		return "", ErrInvalidAspectRatio
	}
	return r, nil
}

// GeneratedArtifact は生成に成功した1枚の画像とその生成条件です。
// 生成後に変更してはいけません。値として受け渡します。
type GeneratedArtifact struct {
	ID          string      `json:"id"`
	ImageURL    string      `json:"imageUrl"` // data:<mime>;base64,<payload>
	MimeType    string      `json:"mimeType"`
	Prompt      string      `json:"prompt"`
	AspectRatio AspectRatio `json:"aspectRatio"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// DownloadName はダウンロード時のファイル名を返します。
func (a GeneratedArtifact) DownloadName() string {
	return DownloadFileName(a.ID, a.MimeType)
}

// ImageBytes は ImageURL をデコードして画像のバイナリを返します。
func (a GeneratedArtifact) ImageBytes() ([]byte, error) {
	_, data, err := DecodeDataURL(a.ImageURL)
	return data, err
}
