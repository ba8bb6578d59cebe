package models

// Category, vitrindeki kategori bilgisidir. Name, isteğin diline göre çevrilmiş addır.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ErrorResponse, API hata gövdesidir
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
