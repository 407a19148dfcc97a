package domain

// Capability is the kind of authorization being requested.
type Capability string

const (
	CapabilitySimple Capability = "Simple"
	CapabilityUser   Capability = "User"
	CapabilityAdmin  Capability = "Admin"
	CapabilityGroup  Capability = "Group"
)

// AccessRequest asks the verifier whether the caller's session satisfies a
// capability. Username disambiguates CapabilityUser; Emails carries the
// member set for CapabilityGroup.
type AccessRequest struct {
	Capability Capability
	Username   string
	Emails     []string
}

// AccessResult is the verifier's answer. It is built fresh per request and
// never persisted. When the access token was transparently renewed,
// Refreshed is true and NewAccessToken carries the replacement; the caller
// is responsible for emitting it as the new session artifact.
type AccessResult struct {
	Authorized     bool
	Reason         string
	Refreshed      bool
	NewAccessToken string
}

// Denial reasons shared between the verifier and the policy predicates.
const (
	ReasonAuthorized   = "Authorized"
	ReasonUnauthorized = "Unauthorized"
	ReasonMissingInfo  = "Token is missing information"
	ReasonMismatched   = "Mismatched users"
	ReasonLoginAgain   = "Perform login again"
	ReasonInvalidToken = "Invalid token"
	ReasonInvalidUser  = "Unauthorized: invalid user"
	ReasonNotAdmin     = "Unauthorized: not an admin"
	ReasonNotInGroup   = "Unauthorized: user is not in requested group"
)
