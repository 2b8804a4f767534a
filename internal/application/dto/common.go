package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Datos adicionales del error (p. ej. requested/available en stock insuficiente).
	Details map[string]any `json:"details,omitempty"`
}
