package models

// SessionPayload is what a session token asserts about its holder. It never
// carries credential material.
type SessionPayload struct {
	Login string `json:"login"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}
