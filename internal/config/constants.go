// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "CodeFluxBackend"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultResolveTimeout = 5 * time.Second
)

// KVストアのキーレイアウト。SPAがlocalStorageで使っていた配置をそのまま引き継ぐ。
const (
	ProgressKeyPrefix   = "userProgress_"     // + identityToken
	GuestIDKey          = "codeflux_guest_id" // ゲストIDの永続キー (プロファイルごとに一度だけ生成)
	CoursesKey          = "codeflux_courses"  // コースカタログ
	GeneratedCoursesKey = "generatedCourses"  // 生成直後のカタログ (優先して読む)
)
