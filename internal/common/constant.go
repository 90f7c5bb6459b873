package common

// AuthorizationHeaderName carries the bearer access token on requests.
const AuthorizationHeaderName = "Authorization"

// TokenType is returned next to every issued access token.
const TokenType = "bearer"

// RootFolderSentinel in a file update moves the file to the root level.
const RootFolderSentinel int64 = 0
