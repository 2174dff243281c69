package oauthmodel

// ErrorDescriptor is an OAuth2 error as sent to the Authorization Server when
// a login or consent request is rejected (RFC 6749 section 4.1.2.1).
type ErrorDescriptor struct {
	Code        string
	Description string
}

// ErrorCodeAccessDenied means the resource owner or authorization server denied the request.
const ErrorCodeAccessDenied = "access_denied"

// AccessDenied is used for every user initiated denial.
var AccessDenied = ErrorDescriptor{
	Code:        ErrorCodeAccessDenied,
	Description: "The resource owner denied the request",
}
