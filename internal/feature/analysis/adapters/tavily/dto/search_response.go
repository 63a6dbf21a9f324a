// Package dto はTavily APIリクエスト・レスポンスのデータ転送オブジェクトを定義します。
package dto

// SearchRequest は /search エンドポイントへのJSONリクエストボディです。
type SearchRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

// SearchResponse は /search エンドポイントからのJSONレスポンスを表します。
type SearchResponse struct {
	Query   string `json:"query"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
	ResponseTime float64 `json:"response_time"`
}

// ErrorResponse is returned by Tavily on 4xx/5xx.
type ErrorResponse struct {
	Detail struct {
		Error string `json:"error"`
	} `json:"detail"`
}
