package middleware

import (
	"context"
	"net/http"
	"strings"
)

type authTokenCtxKey struct{}

// TokenExtractor は Authorization ヘッダーのBearerトークンをコンテキストへ格納します。
// ここでは検証せず、リクエストを拒否することもありません。
// 進捗APIは匿名ユーザーにも応答する必要があるため、検証と
// ゲストフォールバックはサービス層のIdentityResolverが行います。
func TokenExtractor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			headerParts := strings.SplitN(authHeader, " ", 2)
			if len(headerParts) == 2 && strings.EqualFold(headerParts[0], "bearer") {
				ctx := context.WithValue(r.Context(), authTokenCtxKey{}, headerParts[1])
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetAuthToken はコンテキストからBearerトークンを取得します。未設定なら空文字列。
func GetAuthToken(ctx context.Context) string {
	if token, ok := ctx.Value(authTokenCtxKey{}).(string); ok {
		return token
	}
	return ""
}

// WithAuthToken はトークンをコンテキストへ格納します (テスト用)。
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenCtxKey{}, token)
}
