package model

// DefaultTOTPLabel is the account label used when enrollment does not name one.
const DefaultTOTPLabel = "SecretKey"

// TOTPOptions configures the otpauth URI of a new enrollment.
type TOTPOptions struct {
	Issuer string
	Label  string
}

// TOTPEnrollment is the one-time result of an enrollment. Secret is the
// plaintext seed and is never returned again.
type TOTPEnrollment struct {
	ID     string
	Secret string
	QRCode string
}

// Verification is the outcome of a second-factor check. Token is set only
// when Valid is true.
type Verification struct {
	Valid bool
	Token string
}
