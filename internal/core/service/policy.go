package service

import (
	"github.com/ezwallet/wallet-system/internal/core/domain"
	"github.com/ezwallet/wallet-system/internal/core/token"
)

// evaluatePolicy applies the capability predicate to one claim set.
//
//	Simple  always holds for structurally valid claims.
//	User    holds iff the claims' username matches the requested one.
//	Admin   holds iff the claims carry the Admin role.
//	Group   holds iff the claims' email is in the requested member set.
//
// An unknown capability never holds.
func evaluatePolicy(claims *token.Claims, req domain.AccessRequest) (bool, string) {
	switch req.Capability {
	case domain.CapabilitySimple:
		return true, domain.ReasonAuthorized
	case domain.CapabilityUser:
		if claims.Username == req.Username {
			return true, domain.ReasonAuthorized
		}
		return false, domain.ReasonInvalidUser
	case domain.CapabilityAdmin:
		if claims.Role == domain.RoleAdmin {
			return true, domain.ReasonAuthorized
		}
		return false, domain.ReasonNotAdmin
	case domain.CapabilityGroup:
		for _, email := range req.Emails {
			if claims.Email == email {
				return true, domain.ReasonAuthorized
			}
		}
		return false, domain.ReasonNotInGroup
	default:
		return false, domain.ReasonUnauthorized
	}
}
