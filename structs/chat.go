package structs

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// ChatResponse is the assistant's reply, optionally with product
// suggestions.
type ChatResponse struct {
	Message  string    `json:"message"`
	Products []Product `json:"products,omitempty"`
}

// ContactRequest is the body of POST /contact, the alternate channel used
// when the chat collaborator is quota-limited.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}
