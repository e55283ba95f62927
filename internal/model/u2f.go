package model

// U2FRegisterRequest is the registration challenge handed to the client device.
type U2FRegisterRequest struct {
	AppID     string `json:"appId"`
	Version   string `json:"version"`
	Challenge string `json:"challenge"`
}

// U2FRegisterResponse is the device answer to a registration challenge.
type U2FRegisterResponse struct {
	Version          string `json:"version"`
	RegistrationData string `json:"registrationData"`
	ClientData       string `json:"clientData"`
}

// U2FSignRequest is the authentication challenge handed to the client device.
type U2FSignRequest struct {
	Version   string `json:"version"`
	Challenge string `json:"challenge"`
	AppID     string `json:"appId"`
	KeyHandle string `json:"keyHandle"`
}

// U2FSignResponse is the device answer to an authentication challenge.
type U2FSignResponse struct {
	KeyHandle     string `json:"keyHandle"`
	SignatureData string `json:"signatureData"`
	ClientData    string `json:"clientData"`
}

// U2FDevice is the device binding produced by a successful registration.
// Both fields are websafe base64 without padding.
type U2FDevice struct {
	PublicKey string
	KeyHandle string
}

// U2FRegistration is returned by BeginRegistration.
type U2FRegistration struct {
	ID      string
	Request U2FRegisterRequest
}

// U2FAuthentication is returned by BeginAuthentication.
type U2FAuthentication struct {
	ID      string
	Request U2FSignRequest
}
