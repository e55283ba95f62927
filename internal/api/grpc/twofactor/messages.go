package twofactor

type EnrollTOTPRequest struct {
	Issuer string `json:"issuer,omitempty"`
	Label  string `json:"label,omitempty"`
}

type EnrollTOTPResponse struct {
	UUID   string `json:"uuid"`
	Secret string `json:"secret"`
	QRCode string `json:"qrCode"`
}

type VerifyTOTPRequest struct {
	UUID string `json:"uuid"`
	Code string `json:"code"`
}

// VerifyResponse is returned by both verification calls. Token is an
// assertion accepted by CheckAssertion and is set only when Valid is true.
type VerifyResponse struct {
	Valid bool   `json:"valid"`
	Token string `json:"token,omitempty"`
}

type BeginU2FRegistrationRequest struct {
	AppID string `json:"appId"`
}

type BeginU2FRegistrationResponse struct {
	UUID      string `json:"uuid"`
	AppID     string `json:"appId"`
	Version   string `json:"version"`
	Challenge string `json:"challenge"`
}

type CompleteU2FRegistrationRequest struct {
	UUID             string `json:"uuid"`
	Version          string `json:"version"`
	RegistrationData string `json:"registrationData"`
	ClientData       string `json:"clientData"`
}

type CompleteU2FRegistrationResponse struct{}

type BeginU2FAuthenticationRequest struct {
	UUID string `json:"uuid"`
}

type BeginU2FAuthenticationResponse struct {
	UUID      string `json:"uuid"`
	Version   string `json:"version"`
	Challenge string `json:"challenge"`
	AppID     string `json:"appId"`
	KeyHandle string `json:"keyHandle"`
}

type CompleteU2FAuthenticationRequest struct {
	UUID          string `json:"uuid"`
	KeyHandle     string `json:"keyHandle"`
	SignatureData string `json:"signatureData"`
	ClientData    string `json:"clientData"`
}

type DeleteU2FRequest struct {
	UUID string `json:"uuid"`
}

type DeleteU2FResponse struct{}

type CheckAssertionRequest struct {
	Token string `json:"token"`
}

type CheckAssertionResponse struct {
	AccountID    string `json:"accountId"`
	Method       string `json:"method"`
	CredentialID string `json:"credentialId"`
	IssuedAt     int64  `json:"issuedAt"`
	ExpiresAt    int64  `json:"expiresAt"`
}
