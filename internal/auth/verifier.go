package auth

import (
	"errors"
	"time"

	"expense_tracker/internal/model"
	"expense_tracker/pkg/token"
)

// TokenCodec - подпись и проверка токенов (реализация в pkg/token)
type TokenCodec interface {
	Sign(identity model.Identity, ttl time.Duration) (string, error)
	Verify(tokenStr string) (*model.UserClaims, error)
}

// Result - решение по одному запросу. Не хранится между вызовами
type Result struct {
	Authorized bool
	Cause      string
	// RenewedAccessToken непустой, если access токен был перевыпущен по refresh токену
	RenewedAccessToken string
	RefreshedMessage   string
	// Identity - идентичность, по которой принималось решение
	Identity model.Identity
}

// Renewed сообщает, нужно ли отдать клиенту новый access токен
func (r Result) Renewed() bool {
	return r.RenewedAccessToken != ""
}

type Verifier struct {
	codec     TokenCodec
	accessTTL time.Duration
}

func NewVerifier(codec TokenCodec, accessTTL time.Duration) *Verifier {
	return &Verifier{
		codec:     codec,
		accessTTL: accessTTL,
	}
}

// Verify проверяет пару токенов и требование маршрута.
// Если access токен просрочен, решение принимается по refresh токену и выпускается новый access токен.
// Ошибки не возвращаются: любой исход описывается Result
func (v *Verifier) Verify(accessToken, refreshToken string, req Requirement) Result {
	if accessToken == "" || refreshToken == "" {
		return deny(CauseUnauthorized)
	}

	accessClaims, err := v.codec.Verify(accessToken)
	var refreshClaims *model.UserClaims
	if err == nil {
		refreshClaims, err = v.codec.Verify(refreshToken)
	}

	switch {
	case err == nil:
		return v.verifyPair(identityOf(accessClaims), identityOf(refreshClaims), req)
	case errors.Is(err, token.ErrTokenExpired):
		return v.verifyRefresh(refreshToken, req)
	default:
		return deny(causeOf(err))
	}
}

func (v *Verifier) verifyPair(access, refresh model.Identity, req Requirement) Result {
	if !access.Complete() || !refresh.Complete() {
		return deny(CauseMissingInfo)
	}
	if access != refresh {
		return deny(CauseMismatchedUsers)
	}

	return evaluate(access, req)
}

// verifyRefresh - access токен просрочен, решаем только по refresh токену
func (v *Verifier) verifyRefresh(refreshToken string, req Requirement) Result {
	claims, err := v.codec.Verify(refreshToken)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return deny(CauseLoginAgain)
		}
		return deny(causeOf(err))
	}

	identity := identityOf(claims)
	if !identity.Complete() {
		return deny(CauseMissingInfo)
	}

	res := evaluate(identity, req)
	if !res.Authorized {
		return res
	}

	renewed, err := v.codec.Sign(identity, v.accessTTL)
	if err != nil {
		return deny(err.Error())
	}

	res.RenewedAccessToken = renewed
	res.RefreshedMessage = RefreshedMessage

	return res
}

func evaluate(identity model.Identity, req Requirement) Result {
	if req == nil {
		req = Simple{}
	}

	ok, cause := req.evaluate(identity)

	return Result{
		Authorized: ok,
		Cause:      cause,
		Identity:   identity,
	}
}

func deny(cause string) Result {
	return Result{Authorized: false, Cause: cause}
}

func causeOf(err error) string {
	if kind := token.KindOf(err); kind != "" {
		return kind
	}
	return err.Error()
}

func identityOf(claims *model.UserClaims) model.Identity {
	return model.Identity{
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
	}
}
