// Package tavily はTavily検索APIのクライアントを提供します。
package tavily

import (
	"time"

	"company_intel/internal/platform/env"
)

// DefaultBaseURL is the public Tavily endpoint.
const DefaultBaseURL = "https://api.tavily.com"

// Config はTavily APIクライアントの設定を保持します。
type Config struct {
	APIKey          string        // 認証用APIキー
	BaseURL         string        // APIのベースURL（例: "https://api.tavily.com"）
	SearchDepth     string        // "basic" または "advanced"
	Timeout         time.Duration // HTTPリクエストタイムアウト
	RateLimit       int           // 1分あたりの最大呼び出し回数（0以下で無制限）
	MaxContentRunes int           // 各結果の本文の最大文字数
}

// LoadConfig は環境変数からTavilyの設定を読み込みます。
func LoadConfig() Config {
	return Config{
		APIKey:          env.Get("TAVILY_API_KEY", ""),
		BaseURL:         env.Get("TAVILY_BASE_URL", DefaultBaseURL),
		SearchDepth:     "basic",
		Timeout:         15 * time.Second,
		RateLimit:       env.GetInt("SEARCH_RATE_LIMIT", 60),
		MaxContentRunes: 500,
	}
}
