//go:generate mockery --name SessionProvider --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"codeflux_backend/internal/config"
	"codeflux_backend/internal/middleware"
	"codeflux_backend/internal/model"
	"codeflux_backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionProvider はセッション/アイデンティティ基盤 (スコープ外) との契約です。
// サインイン済みならユーザーIDを、未サインインなら model.ErrNotFound を返します。
type SessionProvider interface {
	AuthState(ctx context.Context) (string, error)
}

// IdentityResolver は進捗操作の前段で「誰の進捗バケットか」を解決します。
type IdentityResolver interface {
	// ResolveIdentity はサインイン済みユーザーID、失敗時は安定したゲストIDを返します。
	// タイムアウト・エラー・未サインインはすべてゲストへのフォールバックに吸収され、
	// 呼び出し元には決してエラーを返しません。
	ResolveIdentity(ctx context.Context) string

	// AuthenticatedUser はサインインを前提とする機能向けのゲートです。
	// 匿名なら model.ErrForbidden を返します (進捗操作ではこちらは使わない)。
	AuthenticatedUser(ctx context.Context) (string, error)
}

type sessionService struct {
	db       *gorm.DB
	kv       repository.KVRepository
	provider SessionProvider
	cfg      *config.Config

	// ゲストIDは一度だけ割り当てて使い回す。KVへの永続化に失敗しても
	// インメモリキャッシュが生き続ける限り同じバケットを指す。
	mu            sync.Mutex
	cachedGuestID string
}

func NewSessionService(db *gorm.DB, kv repository.KVRepository, provider SessionProvider, cfg *config.Config) IdentityResolver {
	return &sessionService{
		db:       db,
		kv:       kv,
		provider: provider,
		cfg:      cfg,
	}
}

type authResult struct {
	id  string
	err error
}

func (s *sessionService) ResolveIdentity(ctx context.Context) string {
	logger := middleware.GetLogger(ctx)

	if s.cfg.Auth.Enabled && s.provider != nil {
		tctx, cancel := context.WithTimeout(ctx, s.cfg.Auth.ResolveTimeout)
		defer cancel()

		// プロバイダがctxを無視しても待ち時間が上限を超えないよう、selectで競わせる
		ch := make(chan authResult, 1)
		go func() {
			id, err := s.provider.AuthState(tctx)
			ch <- authResult{id: id, err: err}
		}()

		select {
		case r := <-ch:
			if r.err == nil && r.id != "" {
				return r.id
			}
			if r.err != nil && !errors.Is(r.err, model.ErrNotFound) {
				logger.Warn("Auth state check failed, falling back to guest", "error", r.err)
			}
		case <-tctx.Done():
			logger.Warn("Auth state check timed out, falling back to guest",
				"timeout", s.cfg.Auth.ResolveTimeout)
		}
	}

	return s.guestID(ctx)
}

func (s *sessionService) AuthenticatedUser(ctx context.Context) (string, error) {
	if !s.cfg.Auth.Enabled || s.provider == nil {
		return "", model.NewAppError("UNAUTHORIZED", "サインインが必要です。", "", model.ErrForbidden)
	}

	tctx, cancel := context.WithTimeout(ctx, s.cfg.Auth.ResolveTimeout)
	defer cancel()

	ch := make(chan authResult, 1)
	go func() {
		id, err := s.provider.AuthState(tctx)
		ch <- authResult{id: id, err: err}
	}()

	select {
	case r := <-ch:
		if r.err == nil && r.id != "" {
			return r.id, nil
		}
		return "", model.NewAppError("UNAUTHORIZED", "サインインが必要です。", "", model.ErrForbidden)
	case <-tctx.Done():
		return "", model.NewAppError("AUTH_TIMEOUT", "セッションの確認がタイムアウトしました。", "", model.ErrIdentityTimeout)
	}
}

// guestID はプロファイルごとに安定したゲストIDを返します。割り当ては冪等です。
func (s *sessionService) guestID(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cachedGuestID != "" {
		return s.cachedGuestID
	}

	logger := middleware.GetLogger(ctx)

	// 既存の永続IDがあればそれを使う
	if raw, err := s.kv.Get(ctx, s.db, config.GuestIDKey); err == nil {
		var id string
		if jsonErr := json.Unmarshal([]byte(raw), &id); jsonErr == nil && id != "" {
			s.cachedGuestID = id
			return id
		}
		logger.Warn("Corrupt guest id record, allocating a new one")
	} else if !errors.Is(err, model.ErrNotFound) {
		logger.Warn("Error reading guest id, allocating in-memory", "error", err)
	}

	// 新規割り当て。先にキャッシュしてから永続化を試みる。
	// 永続化に失敗してもプロセス内では同じIDを返し続け、バケットの分裂を防ぐ
	id := "guest_" + uuid.NewString()
	s.cachedGuestID = id

	raw, _ := json.Marshal(id)
	if err := s.kv.Set(ctx, s.db, config.GuestIDKey, string(raw)); err != nil {
		logger.Warn("Failed to persist guest id, keeping in-memory only", "error", err)
	} else {
		logger.Info("Allocated new guest identity", "guest_id", id)
	}
	return id
}

// jwtSessionProvider はAuthorizationヘッダーのBearerトークンを検証するSessionProviderです。
// トークンの発行自体は外部の認証サービスが行います。
type jwtSessionProvider struct {
	cfg *config.Config
}

func NewJWTSessionProvider(cfg *config.Config) SessionProvider {
	return &jwtSessionProvider{cfg: cfg}
}

func (p *jwtSessionProvider) AuthState(ctx context.Context) (string, error) {
	tokenString := middleware.GetAuthToken(ctx)
	if tokenString == "" {
		return "", model.ErrNotFound // 未サインイン
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 署名アルゴリズムが期待通り(HS256)かチェック
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(p.cfg.Auth.SecretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("jwtSessionProvider.AuthState: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", model.ErrNotFound
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", model.ErrNotFound
	}
	return subject, nil
}
