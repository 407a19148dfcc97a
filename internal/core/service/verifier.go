package service

import (
	"errors"
	"time"

	"github.com/ezwallet/wallet-system/internal/api/metrics"
	"github.com/ezwallet/wallet-system/internal/core/domain"
	"github.com/ezwallet/wallet-system/internal/core/token"
)

// Verifier decides authorization for a capability given the two raw tokens
// from a request's session cookies. It is a pure decision procedure over
// the codec: it never touches the credential store and never returns an
// error; every branch resolves to an AccessResult.
type Verifier struct {
	codec     *token.Codec
	accessTTL time.Duration
}

func NewVerifier(codec *token.Codec, accessTTL time.Duration) *Verifier {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	return &Verifier{codec: codec, accessTTL: accessTTL}
}

// Verify runs the per-request decision procedure:
//
//   - either token missing → denied.
//   - both tokens verify → claims must be complete, describe the same
//     identity, and BOTH claim sets must satisfy the capability.
//   - access expired, refresh valid → the capability is evaluated against
//     the refresh claims alone; on success a fresh access token is minted
//     from them and returned with Refreshed set. The caller emits it as the
//     new session artifact.
//   - both expired → "Perform login again".
//   - anything malformed → denied with the token error reason.
func (v *Verifier) Verify(accessToken, refreshToken string, req domain.AccessRequest) domain.AccessResult {
	if accessToken == "" || refreshToken == "" {
		return denied(req, domain.ReasonUnauthorized)
	}

	access, err := v.codec.Verify(accessToken)
	switch {
	case err == nil:
		return v.verifyPair(access, refreshToken, req)
	case errors.Is(err, token.ErrTokenExpired):
		return v.verifyRenewal(refreshToken, req)
	default:
		return denied(req, domain.ReasonInvalidToken)
	}
}

// verifyPair handles the path where the access token is still live.
func (v *Verifier) verifyPair(access *token.Claims, refreshToken string, req domain.AccessRequest) domain.AccessResult {
	refresh, err := v.codec.Verify(refreshToken)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return denied(req, domain.ReasonLoginAgain)
		}
		return denied(req, domain.ReasonInvalidToken)
	}

	if !access.Complete() || !refresh.Complete() {
		return denied(req, domain.ReasonMissingInfo)
	}
	if !access.SameIdentity(refresh) {
		return denied(req, domain.ReasonMismatched)
	}

	// Both claim sets must independently satisfy the capability, not
	// merely match each other.
	if ok, reason := evaluatePolicy(access, req); !ok {
		return denied(req, reason)
	}
	if ok, reason := evaluatePolicy(refresh, req); !ok {
		return denied(req, reason)
	}

	return domain.AccessResult{Authorized: true, Reason: domain.ReasonAuthorized}
}

// verifyRenewal handles the expired-access path: only the refresh claims
// are evaluated, since the access token is rebuilt from them.
func (v *Verifier) verifyRenewal(refreshToken string, req domain.AccessRequest) domain.AccessResult {
	refresh, err := v.codec.Verify(refreshToken)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return denied(req, domain.ReasonLoginAgain)
		}
		return denied(req, domain.ReasonInvalidToken)
	}

	if ok, reason := evaluatePolicy(refresh, req); !ok {
		return denied(req, reason)
	}

	renewed, err := v.codec.Sign(token.Claims{
		Username: refresh.Username,
		Email:    refresh.Email,
		Role:     refresh.Role,
		ID:       refresh.ID,
	}, v.accessTTL)
	if err != nil {
		return denied(req, domain.ReasonUnauthorized)
	}

	metrics.TokenRefreshTotal.Inc()
	return domain.AccessResult{
		Authorized:     true,
		Reason:         domain.ReasonAuthorized,
		Refreshed:      true,
		NewAccessToken: renewed,
	}
}

func denied(req domain.AccessRequest, reason string) domain.AccessResult {
	metrics.AuthDeniedTotal.WithLabelValues(string(req.Capability)).Inc()
	return domain.AccessResult{Reason: reason}
}
