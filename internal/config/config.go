package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Settings はアプリケーションの設定です。
// APIKey が空でも起動はでき、生成時に ConfigurationError になります。
type Settings struct {
	APIKey         string `envconfig:"API_KEY"`
	Model          string `envconfig:"GEMINI_IMAGE_MODEL" default:"gemini-2.5-flash-image"`
	ListenAddr     string `envconfig:"LISTEN_ADDR" default:":8080"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	PreviewQuality int    `envconfig:"PREVIEW_QUALITY" default:"75"`
}

// Load は .env ファイル(あれば)を読み込んだ後、環境変数から設定を作ります。
func Load(envFiles ...string) (*Settings, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".env の読み込みに失敗しました: %w", err)
	}

	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("環境変数の読み込みに失敗しました: %w", err)
	}
	if s.PreviewQuality < 1 || s.PreviewQuality > 100 {
		return nil, fmt.Errorf("PREVIEW_QUALITY は 1〜100 で指定してください: %d", s.PreviewQuality)
	}
	return &s, nil
}
