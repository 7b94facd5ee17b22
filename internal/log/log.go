package log

import (
	"io"
	"log/slog"
	"strings"

	"github.com/samber/lo"
)

// New は JSON 形式の slog.Logger を作ります。時刻はログ基盤側で付与する前提で出力しません。
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return lo.Ternary(a.Key == slog.TimeKey, slog.Attr{}, a)
		},
	}))
}

// ParseLevel は文字列のログレベルを変換します。不明な値は Info です。
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}
